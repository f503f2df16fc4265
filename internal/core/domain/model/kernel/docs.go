// Package kernel provides the shared value objects of the order domain.
//
// The package includes:
//   - UUID: identifier for orders, notifications, customers, chefs, couriers and catalog items
//   - Money: an exact, non-negative decimal amount used for prices, fees and totals
//
// Both types are immutable, safe for concurrent use, and invalid in their zero value,
// so a forgotten constructor call is caught by Validate.
package kernel
