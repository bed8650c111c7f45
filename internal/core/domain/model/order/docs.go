// Package order contains the Order aggregate and the fulfillment state
// machine. The aggregate owns every order mutation: status transitions are
// validated against the legal-edge table before any field changes, and the
// side effects of specific transitions (delivered timestamp, cancellation
// reason) are applied together with the status itself.
//
// The state machine:
//
//	Received ──> Processing ──> Shipped ──> Delivered
//	    │             │            ^            │
//	    v             v            └────────────┘
//	Cancelled <───────┘             (redelivery)
//
// Cancelled is reachable from Received and Processing only. Delivered has a
// single outward edge back to Shipped, modelling a failed or disputed
// delivery being reattempted; this is the only backward move and it clears
// the delivered timestamp.
package order
