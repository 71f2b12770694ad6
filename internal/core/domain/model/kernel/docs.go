// Package kernel holds the value objects every aggregate of the fulfillment
// core shares: UUID identifiers and Money amounts in minor currency units.
package kernel
