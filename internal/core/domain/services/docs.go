// Package services provides domain services for the takeout tracking system.
// It implements business rules that don't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - PrepScheduler: the just-in-time slack rule deciding when a kitchen must start cooking
package services
