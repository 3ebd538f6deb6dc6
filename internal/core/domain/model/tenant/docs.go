// Package tenant contains the Tenant aggregate: one isolated store with its
// notification toggles, message templates and lifecycle policy flags. Tenant
// isolation is the hardest invariant in the system; every other aggregate
// carries a tenant id that must match the tenant resolved for the request.
package tenant
