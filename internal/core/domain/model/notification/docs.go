// Package notification models outbound messages addressed to one customer, chef or courier.
//
// A Notification is written in the same transaction as the order change that caused it
// and starts unsent. Its sent flag flips exactly once, after the push gateway confirms
// delivery; a failed or skipped delivery leaves it false so it can be dispatched again.
package notification
