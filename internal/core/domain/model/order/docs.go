// Package order implements the Order aggregate of the order service.
//
// The package includes:
//   - Order: the aggregate root holding the store reference and the details document
//   - Details: the semi-structured document with the status history and caller fields
//   - StatusRecord: one immutable entry of the history
//   - Status: the closed enumeration of lifecycle statuses and its transition table
//   - Origin: the actor a transition is attributed to
//
// Key business rules:
//   - every order starts in RECEIVED with origin STORE
//   - the forward path is RECEIVED -> CONFIRMED -> DISPATCHED -> DELIVERED
//   - any non-terminal order can be CANCELED
//   - DELIVERED and CANCELED are terminal and absorb further appends
package order
