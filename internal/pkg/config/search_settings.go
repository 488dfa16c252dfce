package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Default Elasticsearch index names of the edu-sharing repository
const (
	DefaultWorkspaceIndex = "workspace"
	DefaultAnalyticsIndex = "oeh-search-analytics"
)

// ElasticsearchSettings holds the connection and retry configuration for the
// search backend. The backend is usually reached through a tunnel on
// localhost:9200 rather than being directly network-accessible.
type ElasticsearchSettings struct {
	Addresses      []string `mapstructure:"addresses" validate:"required,min=1,dive,url"`
	Username       string   `mapstructure:"username"`
	Password       string   `mapstructure:"password"`
	WorkspaceIndex string   `mapstructure:"workspace_index"`
	AnalyticsIndex string   `mapstructure:"analytics_index"`
	MaxConnRetries int      `mapstructure:"max_conn_retries" validate:"min=0,max=100"`
	RetryBackoff   int      `mapstructure:"retry_backoff_seconds" validate:"min=0,max=300"`
}

// Validate checks that all fields in ElasticsearchSettings are valid
func (s *ElasticsearchSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ElasticsearchSettings: %w", err)
	}

	return nil
}

// ApplyDefaults fills unset index names and retry values with defaults
func (s *ElasticsearchSettings) ApplyDefaults() {
	if s.WorkspaceIndex == "" {
		s.WorkspaceIndex = DefaultWorkspaceIndex
	}
	if s.AnalyticsIndex == "" {
		s.AnalyticsIndex = DefaultAnalyticsIndex
	}
	if s.RetryBackoff == 0 {
		s.RetryBackoff = 30
	}
}

// Backoff returns the retry backoff as a duration
func (s *ElasticsearchSettings) Backoff() time.Duration {
	return time.Duration(s.RetryBackoff) * time.Second
}
