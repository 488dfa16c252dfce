package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openeduhub/metaqs/internal/domain/portals"
	"github.com/openeduhub/metaqs/internal/pkg/logger"
)

// Searcher executes search requests, implemented by Client
type Searcher interface {
	Search(ctx context.Context, index string, query map[string]interface{}) (*Envelope, error)
}

type collectionSearchRepository struct {
	client Searcher
	index  string
	logger logger.Logger
}

// NewCollectionSearchRepository creates a CollectionSearchRepository backed
// by the workspace index
func NewCollectionSearchRepository(client Searcher, workspaceIndex string, log logger.Logger) (portals.CollectionSearchRepository, error) {
	return &collectionSearchRepository{
		client: client,
		index:  workspaceIndex,
		logger: log,
	}, nil
}

func (r *collectionSearchRepository) GetCollection(ctx context.Context, id string) (*portals.Collection, error) {
	envelope, err := r.client.Search(ctx, r.index, CollectionByIDBody(id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch collection %s: %w", id, err)
	}

	if len(envelope.Hits.Hits) == 0 {
		return nil, fmt.Errorf("collection %s: %w", id, portals.ErrNotFound)
	}

	collection, err := r.parseCollection(envelope.Hits.Hits[0])
	if err != nil {
		return nil, err
	}

	count, err := r.CountResources(ctx, id)
	if err != nil {
		return nil, err
	}
	collection.CountTotalResources = count

	return collection, nil
}

func (r *collectionSearchRepository) GetChildren(ctx context.Context, collectionID string) ([]*portals.Collection, error) {
	envelope, err := r.client.Search(ctx, r.index, ChildrenBody(collectionID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch children of %s: %w", collectionID, err)
	}

	seen := make(map[string]bool, len(envelope.Hits.Hits))
	children := make([]*portals.Collection, 0, len(envelope.Hits.Hits))
	for _, hit := range envelope.Hits.Hits {
		child, err := r.parseCollection(hit)
		if err != nil {
			return nil, err
		}
		if child.ID == "" || seen[child.ID] {
			continue
		}
		seen[child.ID] = true

		count, err := r.CountResources(ctx, child.ID)
		if err != nil {
			return nil, err
		}
		child.CountTotalResources = count

		children = append(children, child)
	}

	return children, nil
}

func (r *collectionSearchRepository) CountResources(ctx context.Context, collectionID string) (int64, error) {
	envelope, err := r.client.Search(ctx, r.index, CountsByAttributeBody(collectionID, LicenseAttribute))
	if err != nil {
		return 0, fmt.Errorf("failed to count resources of %s: %w", collectionID, err)
	}
	return envelope.Hits.Total.Value, nil
}

func (r *collectionSearchRepository) CountsByAttribute(ctx context.Context, collectionID, attribute string) ([]portals.Bucket, int64, error) {
	envelope, err := r.client.Search(ctx, r.index, CountsByAttributeBody(collectionID, attribute))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to aggregate %s for %s: %w", attribute, collectionID, err)
	}

	return bucketsFromAggregation(envelope), envelope.Hits.Total.Value, nil
}

func (r *collectionSearchRepository) CollectionsMissingAttribute(ctx context.Context, collectionID, attribute string) ([]portals.Resource, int64, error) {
	envelope, err := r.client.Search(ctx, r.index, CollectionsMissingAttributeBody(collectionID, attribute, DefaultSize))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list collections of %s missing %s: %w", collectionID, attribute, err)
	}

	resources, err := r.parseResources(envelope)
	if err != nil {
		return nil, 0, err
	}
	return resources, envelope.Hits.Total.Value, nil
}

func (r *collectionSearchRepository) MaterialsMissingAttribute(ctx context.Context, collectionID, attribute string) ([]portals.Resource, int64, error) {
	envelope, err := r.client.Search(ctx, r.index, MaterialsMissingAttributeBody(collectionID, attribute, DefaultSize))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list materials of %s missing %s: %w", collectionID, attribute, err)
	}

	resources, err := r.parseResources(envelope)
	if err != nil {
		return nil, 0, err
	}
	return resources, envelope.Hits.Total.Value, nil
}

func (r *collectionSearchRepository) MaterialsWithoutLicense(ctx context.Context, collectionID string) ([]portals.Resource, error) {
	envelope, err := r.client.Search(ctx, r.index, MaterialsWithoutLicenseBody(collectionID, DefaultSize))
	if err != nil {
		return nil, fmt.Errorf("failed to list unlicensed materials of %s: %w", collectionID, err)
	}
	return r.parseResources(envelope)
}

func (r *collectionSearchRepository) AggregateCollectionUsage(ctx context.Context) ([]portals.Bucket, error) {
	envelope, err := r.client.Search(ctx, r.index, UsageAggregationBody(UsageAttribute))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate collection usage: %w", err)
	}
	return bucketsFromAggregation(envelope), nil
}

func (r *collectionSearchRepository) parseCollection(hit Hit) (*portals.Collection, error) {
	var source workspaceSource
	if err := json.Unmarshal(hit.Source, &source); err != nil {
		return nil, fmt.Errorf("failed to parse workspace node %s: %w", hit.ID, err)
	}
	return source.toCollection(), nil
}

func (r *collectionSearchRepository) parseResources(envelope *Envelope) ([]portals.Resource, error) {
	resources := make([]portals.Resource, 0, len(envelope.Hits.Hits))
	for _, hit := range envelope.Hits.Hits {
		var source workspaceSource
		if err := json.Unmarshal(hit.Source, &source); err != nil {
			return nil, fmt.Errorf("failed to parse workspace node %s: %w", hit.ID, err)
		}
		resources = append(resources, source.toResource())
	}
	return resources, nil
}

// bucketsFromAggregation extracts the terms buckets of the my-agg
// aggregation
func bucketsFromAggregation(envelope *Envelope) []portals.Bucket {
	agg, ok := envelope.Aggregations["my-agg"]
	if !ok {
		return nil
	}

	buckets := make([]portals.Bucket, 0, len(agg.Buckets))
	for _, b := range agg.Buckets {
		buckets = append(buckets, portals.Bucket{Key: b.Key, DocCount: b.DocCount})
	}
	return buckets
}
