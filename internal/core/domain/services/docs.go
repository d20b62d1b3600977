// Package services holds domain services of the order service.
//
// StateMachine encodes the order status graph and turns "advance" and "cancel"
// requests into status appends.
package services
