package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// EduSharingSettings holds the configuration for the edu-sharing REST API
// which serves the editorial portal collections.
type EduSharingSettings struct {
	BaseURL          string `mapstructure:"base_url" validate:"required,url"`
	RootCollectionID string `mapstructure:"root_collection_id" validate:"required"`
	MaxItems         int    `mapstructure:"max_items" validate:"min=0"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds" validate:"min=0,max=600"`
	MaxConnRetries   int    `mapstructure:"max_conn_retries" validate:"min=0,max=100"`
}

// Validate checks that all fields in EduSharingSettings are valid
func (s *EduSharingSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for EduSharingSettings: %w", err)
	}

	return nil
}
