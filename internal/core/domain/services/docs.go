// Package services provides domain services that span more than one aggregate.
//
// The package includes:
//   - NotificationPlanner: derives the notifications an order change produces
//
// The planner is pure: it reads an Order and returns unsaved Notifications. Persisting
// and delivering them is the job of the application layer.
package services
