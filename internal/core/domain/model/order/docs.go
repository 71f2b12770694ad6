// Package order implements the Order aggregate: priced lines, the order
// status machine, the payment status it couples to, and the return workflow.
//
// Order status moves only along these edges; anything else fails with
// errs.InvalidTransitionError and leaves the order untouched:
//
//	PENDING ──> CONFIRMED ──> DELIVERING ──> COMPLETED
//	   │            │              │
//	   └────────────┴──────────────┴──────> CANCELLED
//
// Cancelling returns the quantities to restock; the caller releases them in
// the same transaction as the status write. Completing a cash-on-delivery
// order settles its payment in the same call.
//
// Returns run on their own machine once the order is COMPLETED:
//
//	none ──> PENDING ──> APPROVED ──> COMPLETED
//	  ^         │
//	  └─────────┤ (customer cancels)
//	            └──> REJECTED
package order
