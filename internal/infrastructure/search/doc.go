// Package search implements the domain repositories against the
// Elasticsearch indices of the edu-sharing repository: the workspace index
// holding collection and resource nodes, and the search analytics index
// holding user search events.
package search
