package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	OCR       OCRConfig
	Normalize NormalizeConfig
	Audit     AuditConfig
	Export    ExportConfig
}

// OCRConfig holds text-recognition engine configuration
type OCRConfig struct {
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	TessdataDir string
	Languages   []string
	Timeout     time.Duration
}

// NormalizeConfig holds image-normalizer configuration
type NormalizeConfig struct {
	Quick         bool    // skip geometric correction + denoise for previews
	MinQuadScore  float64 // rectangle detector confidence floor
	BinarizeLevel float64 // threshold in [0,1] for the final binarize stage
}

// AuditConfig holds the caller-side audit store configuration
type AuditConfig struct {
	DBPath string // empty disables the audit store
}

// ExportConfig holds XLSX export configuration
type ExportConfig struct {
	OutPath string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			Languages:   []string{getEnv("OCR_LANG", "eng")},
			Timeout:     getEnvAsDuration("OCR_TIMEOUT", 30*time.Second),
		},
		Normalize: NormalizeConfig{
			Quick:         getEnvAsBool("NORMALIZE_QUICK", false),
			MinQuadScore:  getEnvAsFloat64("QUAD_MIN_SCORE", 0.6),
			BinarizeLevel: getEnvAsFloat64("BINARIZE_LEVEL", 0.55),
		},
		Audit: AuditConfig{
			DBPath: getEnv("AUDIT_DB_PATH", ""),
		},
		Export: ExportConfig{
			OutPath: getEnv("EXPORT_PATH", "receipts.xlsx"),
		},
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.OCR.Tesseract == "" {
		return NewAppError("CONFIG_ERROR", "TESSERACT_BIN must not be empty", ErrInvalidInput)
	}
	if c.Normalize.MinQuadScore < 0 || c.Normalize.MinQuadScore > 1 {
		return NewAppError("CONFIG_ERROR", "QUAD_MIN_SCORE must be in [0,1]", ErrInvalidInput)
	}
	if c.Normalize.BinarizeLevel <= 0 || c.Normalize.BinarizeLevel >= 1 {
		return NewAppError("CONFIG_ERROR", "BINARIZE_LEVEL must be in (0,1)", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
