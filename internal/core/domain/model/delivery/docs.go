// Package delivery models the shipper assignment attached to a confirmed
// order and the proof-of-delivery image that closes it.
//
//	CREATED ──claim──> DELIVERING ──proof──> DELIVERED
//	   └──────cancel──────┴──> CANCELLED
//
// Claiming also moves the order to DELIVERING and cancelling the order closes
// the assignment; services.DeliveryCoordinator applies both changes so the
// two machines never drift apart.
package delivery
