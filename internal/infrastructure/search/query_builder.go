package search

import (
	"time"

	"github.com/openeduhub/metaqs/internal/domain/portals"
)

// DefaultSize is the hit window requested for listing queries
const DefaultSize = 10000

// LicenseAttribute is the keyword field carrying the license of a resource
const LicenseAttribute = portals.LicenseAttribute

// UsageAttribute is the keyword field aggregated to count how many
// resources reference each collection
const UsageAttribute = "collections.nodeRef.id.keyword"

// NoLicenseKeys are license values that do not constitute a usable license
var NoLicenseKeys = []string{"NONE", "", "UNTERRICHTS_UND_LEHRMEDIEN"}

// SourceFields is the _source projection used for workspace queries
var SourceFields = []string{
	"nodeRef",
	"type",
	"properties.cclom:title",
	"properties.ccm:wwwurl",
	"properties.cm:name",
	"properties.cm:title",
	"path",
}

// nodePathSourceFields is the projection for resource lookups from the
// analytics flow
var nodePathSourceFields = []string{
	"properties.cclom:title",
	"properties.cm:name",
	"collections.path",
	"properties.ccm:replicationsource",
	"properties.ccm:wwwurl",
	"properties.cm:creator",
}

type body = map[string]interface{}

// baseCondition builds the bool condition matching published resources of
// the open educational metadata set, optionally restricted to a collection
// and extended with one additional must clause.
func baseCondition(collectionID string, additionalMust body) body {
	mustConditions := []body{
		{"terms": body{"type": []string{portals.TypeResource}}},
		{"terms": body{"permissions.read": []string{"GROUP_EVERYONE"}}},
		{"terms": body{"properties.cm:edu_metadataset": []string{"mds_oeh"}}},
		{"terms": body{"nodeRef.storeRef.protocol": []string{"workspace"}}},
	}

	if additionalMust != nil {
		mustConditions = append(mustConditions, additionalMust)
	}

	if collectionID != "" {
		mustConditions = append(mustConditions, body{
			"bool": body{
				"should": []body{
					{"match": body{"collections.path": collectionID}},
					{"match": body{"collections.nodeRef.id": collectionID}},
				},
				"minimum_should_match": 1,
			},
		})
	}

	return body{"bool": body{"must": mustConditions}}
}

// CollectionByIDBody matches a single collection node by its node ID
func CollectionByIDBody(id string) body {
	return body{
		"query": body{
			"bool": body{
				"must": []body{
					{"terms": body{"type": []string{portals.TypeCollection}}},
					{"bool": body{
						"should": []body{
							{"match": body{"nodeRef.id": id}},
						},
					}},
				},
			},
		},
		"size":             DefaultSize,
		"track_total_hits": true,
		"_source":          SourceFields,
	}
}

// ChildrenBody matches the collection nodes below a collection
func ChildrenBody(collectionID string) body {
	return body{
		"query": body{
			"bool": body{
				"must": []body{
					{"terms": body{"type": []string{portals.TypeCollection}}},
					{"bool": body{
						"should": []body{
							{"match": body{"path": collectionID}},
						},
					}},
				},
			},
		},
		"size":             DefaultSize,
		"track_total_hits": true,
		"_source":          SourceFields,
	}
}

// CountsByAttributeBody aggregates an attribute over the resources of a
// collection. With size 0 only the aggregation and the total count are
// returned.
func CountsByAttributeBody(collectionID, attribute string) body {
	return body{
		"query": body{
			"bool": body{
				"must": []body{
					baseCondition(collectionID, nil),
				},
			},
		},
		"aggs": body{
			"my-agg": body{
				"terms": body{
					"field": attribute,
				},
			},
		},
		"size":             0,
		"track_total_hits": true,
	}
}

// CollectionsMissingAttributeBody matches collection nodes below a
// collection that lack the attribute entirely
func CollectionsMissingAttributeBody(collectionID, attribute string, size int) body {
	return body{
		"query": body{
			"bool": body{
				"must": []body{
					{"terms": body{"type": []string{portals.TypeCollection}}},
					{"terms": body{"permissions.read": []string{"GROUP_EVERYONE"}}},
					{"bool": body{
						"should": []body{
							{"match": body{"path": collectionID}},
							{"match": body{"nodeRef.id": collectionID}},
						},
						"minimum_should_match": 1,
					}},
				},
				"must_not": []body{
					{"wildcard": body{attribute: "*"}},
				},
			},
		},
		"_source":          SourceFields,
		"size":             size,
		"track_total_hits": true,
	}
}

// MaterialsMissingAttributeBody matches resources inside a collection that
// lack the attribute entirely
func MaterialsMissingAttributeBody(collectionID, attribute string, size int) body {
	return body{
		"query": body{
			"bool": body{
				"must": []body{
					baseCondition(collectionID, nil),
				},
				"must_not": []body{
					{"wildcard": body{attribute: "*"}},
				},
			},
		},
		"_source":          SourceFields,
		"size":             size,
		"track_total_hits": true,
	}
}

// MaterialsWithoutLicenseBody matches resources inside a collection whose
// license key is one of the not-a-license values
func MaterialsWithoutLicenseBody(collectionID string, size int) body {
	missingLicense := body{
		"terms": body{
			LicenseAttribute: NoLicenseKeys,
		},
	}

	return body{
		"query": body{
			"bool": body{
				"must": []body{
					baseCondition(collectionID, missingLicense),
				},
			},
		},
		"_source":          SourceFields,
		"size":             size,
		"track_total_hits": true,
	}
}

// UsageAggregationBody aggregates an attribute over all published resources
func UsageAggregationBody(attribute string) body {
	return body{
		"query": body{
			"bool": body{
				"must": []body{
					baseCondition("", nil),
				},
			},
		},
		"aggs": body{
			"my-agg": body{
				"terms": body{
					"field": attribute,
				},
			},
		},
		"size":             0,
		"track_total_hits": true,
	}
}

// NodePathBody looks up a single node with the source fields needed to
// resolve its collection paths
func NodePathBody(nodeID string) body {
	return body{
		"query": body{
			"match": body{
				"nodeRef.id": nodeID,
			},
		},
		"_source": nodePathSourceFields,
	}
}

// SearchEventsBody matches search events newer than the given timestamp,
// newest first
func SearchEventsBody(since time.Time, limit int) body {
	return body{
		"query": body{
			"range": body{
				"timestamp": body{
					"gt": since.UTC().Format(time.RFC3339),
					"lt": "now",
				},
			},
		},
		"size": limit,
		"sort": []body{
			{"timestamp": body{"order": "desc"}},
		},
	}
}
