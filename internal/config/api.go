package config

import (
	"fmt"
	"os"

	"github.com/synapses/navigator/pkg/formatting"
	"github.com/synapses/navigator/pkg/middleware"
	"github.com/synapses/navigator/pkg/openapi"
	"github.com/synapses/navigator/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "NAVIGATOR_CORS_ENABLED",
	Origins:          "NAVIGATOR_CORS_ORIGINS",
	AllowedMethods:   "NAVIGATOR_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "NAVIGATOR_CORS_ALLOWED_HEADERS",
	AllowCredentials: "NAVIGATOR_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "NAVIGATOR_CORS_MAX_AGE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "NAVIGATOR_API_TITLE",
	Description: "NAVIGATOR_API_DESCRIPTION",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "NAVIGATOR_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "NAVIGATOR_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, CORS, and pagination settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	OpenAPI       openapi.Config        `toml:"openapi"`
	Pagination    pagination.Config     `toml:"pagination"`
}

func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 50 * 1024 * 1024 // 50MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.OpenAPI.Merge(&overlay.OpenAPI)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("NAVIGATOR_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("NAVIGATOR_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
}
