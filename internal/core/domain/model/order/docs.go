// Package order provides the Order aggregate and the rules that govern its lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding the priced line items, fees and current status
//   - LineItem: an immutable snapshot of one catalog item at order time
//   - Status: the lifecycle state machine, driven by a transition table
//   - StatusHistoryEntry: the append-only audit record of every transition
//   - DeliveryType, Actor and FeeSchedule value objects
//
// Key business rules:
//   - total = subtotal + delivery fee + platform fee
//   - the delivery fee is charged for delivery orders only
//   - placed -> accepted -> prepared -> picked_up -> delivered, with picked_up
//     reserved for delivery orders and prepared -> delivered for pickup orders
//   - cancelled is reachable from every non-terminal state
//   - delivered and cancelled are terminal
package order
