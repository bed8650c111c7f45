// Package timeline contains the append-only ledger entity for order status
// changes. Every successful transition appends exactly one Event in the same
// transaction that mutates the order, so the ledger is the durable proof that
// every recorded status was reached legally, not merely a log.
//
// Events are write-once: nothing in the system updates or removes an event
// after it is appended.
package timeline
