// Package services contains stateless domain services that operate across
// aggregates. The snapshot builder lives here because rendering a
// notification needs the order, its customer and the tenant's templates at
// once, and none of those aggregates should know about the other two.
package services
