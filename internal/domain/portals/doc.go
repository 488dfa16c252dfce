// Package portals holds the domain model of the editorial subject portals:
// the collection tree of the edu-sharing repository, per-collection resource
// counts and the contracts for querying, caching and serving them.
package portals
