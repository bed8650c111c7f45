// Package services contains stateless domain services that operate across
// aggregates. They hold no dependencies on storage or transport; handlers
// load the aggregates and delegate the pure computation here, which keeps the
// business rules independently unit-testable.
package services
