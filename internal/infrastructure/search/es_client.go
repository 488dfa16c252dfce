package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/openeduhub/metaqs/internal/pkg/config"
	"github.com/openeduhub/metaqs/internal/pkg/logger"
)

// Envelope is the decoded shape of an Elasticsearch search response
type Envelope struct {
	Hits         HitsEnvelope           `json:"hits"`
	Aggregations map[string]Aggregation `json:"aggregations"`
}

// HitsEnvelope holds the hits section of a search response
type HitsEnvelope struct {
	Total TotalHits `json:"total"`
	Hits  []Hit     `json:"hits"`
}

// TotalHits holds the total hit count
type TotalHits struct {
	Value int64 `json:"value"`
}

// Hit is one search hit with its raw source document
type Hit struct {
	ID     string          `json:"_id"`
	Source json.RawMessage `json:"_source"`
}

// Aggregation holds a terms or missing aggregation result
type Aggregation struct {
	Buckets          []AggBucket `json:"buckets"`
	SumOtherDocCount int64       `json:"sum_other_doc_count"`
	DocCount         *int64      `json:"doc_count"`
}

// AggBucket is one term bucket
type AggBucket struct {
	Key      string `json:"key"`
	DocCount int64  `json:"doc_count"`
}

// Client wraps the Elasticsearch client with the retry behavior expected
// for a tunneled backend: connection errors are retried a bounded number
// of times with a fixed backoff.
type Client struct {
	es         *elasticsearch.Client
	maxRetries int
	backoff    time.Duration
	logger     logger.Logger
}

// NewClient creates a search client from settings
func NewClient(settings *config.ElasticsearchSettings, log logger.Logger) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: settings.Addresses,
		Username:  settings.Username,
		Password:  settings.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	return &Client{
		es:         es,
		maxRetries: settings.MaxConnRetries,
		backoff:    settings.Backoff(),
		logger:     log,
	}, nil
}

// Search executes a search request against an index and decodes the
// response envelope. Transport-level failures are retried; HTTP-level
// errors from the cluster are not.
func (c *Client) Search(ctx context.Context, index string, query map[string]interface{}) (*Envelope, error) {
	payload, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	var res *esapi.Response
	for attempt := 0; ; attempt++ {
		res, err = c.es.Search(
			c.es.Search.WithContext(ctx),
			c.es.Search.WithIndex(index),
			c.es.Search.WithBody(bytes.NewReader(payload)),
			c.es.Search.WithTrackTotalHits(true),
		)
		if err == nil {
			break
		}

		if ctx.Err() != nil {
			return nil, fmt.Errorf("search cancelled: %w", ctx.Err())
		}
		if attempt >= c.maxRetries {
			return nil, fmt.Errorf("search backend unreachable after %d retries: %w", attempt, err)
		}

		c.logger.Error("Connection error while trying to reach the search backend, retrying in ", c.backoff, " (attempt ", attempt+1, ")")
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("search cancelled: %w", ctx.Err())
		case <-time.After(c.backoff):
		}
	}
	defer func() {
		if cerr := res.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body: ", cerr)
		}
	}()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search request to index %s failed: %s: %s", index, res.Status(), string(msg))
	}

	var envelope Envelope
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return &envelope, nil
}
