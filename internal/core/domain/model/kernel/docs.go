// Package kernel holds the value objects shared across aggregates of the
// order service. At the moment that is the UUID identifier used for orders.
package kernel
