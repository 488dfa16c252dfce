// Package edusharing provides the REST client for the edu-sharing
// repository API, used to list the editorial portal collections.
package edusharing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/openeduhub/metaqs/internal/domain/portals"
	"github.com/openeduhub/metaqs/internal/pkg/config"
	"github.com/openeduhub/metaqs/internal/pkg/logger"
)

const defaultMaxItems = 1247483647

// collectionsResponse is the decoded edu-sharing collections listing
type collectionsResponse struct {
	Collections []struct {
		Title string `json:"title"`
		Name  string `json:"name"`
		Type  string `json:"type"`
		Ref   struct {
			ID string `json:"id"`
		} `json:"ref"`
	} `json:"collections"`
}

// Client fetches editorial collections from the edu-sharing REST API
type Client struct {
	httpClient       *http.Client
	baseURL          string
	rootCollectionID string
	maxItems         int
	maxRetries       int
	backoff          time.Duration
	logger           logger.Logger
}

// NewClient creates an editorial collections client from settings
func NewClient(settings *config.EduSharingSettings, log logger.Logger) (portals.EditorialClient, error) {
	timeout := time.Duration(settings.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	maxItems := settings.MaxItems
	if maxItems == 0 {
		maxItems = defaultMaxItems
	}

	return &Client{
		httpClient:       &http.Client{Timeout: timeout},
		baseURL:          settings.BaseURL,
		rootCollectionID: settings.RootCollectionID,
		maxItems:         maxItems,
		maxRetries:       settings.MaxConnRetries,
		backoff:          30 * time.Second,
		logger:           log,
	}, nil
}

// GetEditorialCollections returns the portal root collections without
// resource counts.
func (c *Client) GetEditorialCollections(ctx context.Context) ([]*portals.Collection, error) {
	c.logger.Info("Collecting editorial collections from edu-sharing")

	var decoded collectionsResponse
	for attempt := 0; ; attempt++ {
		err := c.fetchCollections(ctx, &decoded)
		if err == nil {
			break
		}

		if ctx.Err() != nil {
			return nil, fmt.Errorf("editorial collections fetch cancelled: %w", ctx.Err())
		}
		if attempt >= c.maxRetries {
			return nil, fmt.Errorf("edu-sharing unreachable after %d retries: %w", attempt, err)
		}

		c.logger.Error("Connection error trying to reach the edu-sharing repository, retrying in ", c.backoff, " (attempt ", attempt+1, ")")
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("editorial collections fetch cancelled: %w", ctx.Err())
		case <-time.After(c.backoff):
		}
	}

	seen := make(map[string]bool, len(decoded.Collections))
	collections := make([]*portals.Collection, 0, len(decoded.Collections))
	for _, item := range decoded.Collections {
		if item.Ref.ID == "" || seen[item.Ref.ID] {
			continue
		}
		seen[item.Ref.ID] = true
		collections = append(collections, &portals.Collection{
			ID:    item.Ref.ID,
			Name:  item.Name,
			Title: item.Title,
			Type:  item.Type,
		})
	}

	return collections, nil
}

func (c *Client) fetchCollections(ctx context.Context, decoded *collectionsResponse) error {
	endpoint := fmt.Sprintf("%s/rest/collection/v1/collections/local/%s/children/collections",
		c.baseURL, url.PathEscape(c.rootCollectionID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build collections request: %w", err)
	}

	params := req.URL.Query()
	params.Set("scope", "TYPE_EDITORIAL")
	params.Set("skipCount", "0")
	params.Set("maxItems", strconv.Itoa(c.maxItems))
	params.Set("sortProperties", "cm:created")
	params.Set("sortAscending", "true")
	req.URL.RawQuery = params.Encode()

	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("collections request failed: %w", err)
	}
	defer func() {
		if cerr := res.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body: ", cerr)
		}
	}()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("collections request returned status %s", res.Status)
	}

	if err := json.NewDecoder(res.Body).Decode(decoded); err != nil {
		return fmt.Errorf("failed to decode collections response: %w", err)
	}

	return nil
}
