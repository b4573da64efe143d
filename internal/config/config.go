package config

import (
	"os"
	"strconv"

	"bill-export-server/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort         string
	LogLevel           string
	ExportPath         string
	MaxBillSize        int64
	DefaultCountryCode string
	SupabaseURL        string
	SupabaseKey        string
	StorageBucket      string
	APIKey             string
	ChromeDisabled     bool
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:         getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		ExportPath:         getEnvOrDefault("EXPORT_PATH", "./exports"),
		MaxBillSize:        getEnvInt64OrDefault("MAX_BILL_SIZE", 2*1024*1024), // 2MB default
		DefaultCountryCode: getEnvOrDefault("DEFAULT_COUNTRY_CODE", "91"),
		SupabaseURL:        getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:        getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		StorageBucket:      getEnvOrDefault("STORAGE_BUCKET", "bills"),
		APIKey:             getEnvOrDefault("API_KEY", ""),
		ChromeDisabled:     getEnvBoolOrDefault("CHROME_DISABLED", false),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetExportPath returns the directory exported PDFs are written to
func (c *AppConfig) GetExportPath() string {
	return c.ExportPath
}

// GetMaxBillSize returns the maximum allowed bill HTML size
func (c *AppConfig) GetMaxBillSize() int64 {
	return c.MaxBillSize
}

// GetDefaultCountryCode returns the country code used for bare national numbers
func (c *AppConfig) GetDefaultCountryCode() string {
	return c.DefaultCountryCode
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetStorageBucket returns the storage bucket exported PDFs are mirrored to
func (c *AppConfig) GetStorageBucket() string {
	return c.StorageBucket
}

// GetAPIKey returns the API key required on protected routes
func (c *AppConfig) GetAPIKey() string {
	return c.APIKey
}

// IsChromeDisabled reports whether the headless Chrome rasterizer is disabled
func (c *AppConfig) IsChromeDisabled() bool {
	return c.ChromeDisabled
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
