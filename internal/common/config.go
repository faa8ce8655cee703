package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all engine configuration.
type Config struct {
	Policy Policy
	Batch  BatchConfig
}

// Policy holds the accounting policy knobs: tolerance, confidence weights,
// and auto-approval thresholds. These are policy, not incidental constants;
// validators and the decision engine receive them instead of hardcoding.
type Policy struct {
	// ToleranceCents is the maximum acceptable absolute discrepancy, in cents,
	// before two amounts are considered mismatched. The comparison is
	// inclusive: a discrepancy of exactly this many cents still passes.
	ToleranceCents int64

	// ValidationWeight and ExtractionWeight fuse the two confidence signals.
	// Validation is weighted higher: arithmetic correctness matters more than
	// OCR polish for accounting.
	ValidationWeight float64
	ExtractionWeight float64

	// AutoApproveThreshold and VerifyThreshold gate the review decision on
	// fused confidence.
	AutoApproveThreshold float64
	VerifyThreshold      float64
}

// BatchConfig holds batch/queue processing configuration.
type BatchConfig struct {
	Workers        int
	QueueSize      int
	ProcessTimeout time.Duration
}

// DefaultPolicy returns the standard accounting policy: one cent inclusive
// tolerance, 0.7/0.3 validation/extraction weighting, 0.95/0.85 thresholds.
func DefaultPolicy() Policy {
	return Policy{
		ToleranceCents:       1,
		ValidationWeight:     0.70,
		ExtractionWeight:     0.30,
		AutoApproveThreshold: 0.95,
		VerifyThreshold:      0.85,
	}
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Policy: Policy{
			ToleranceCents:       getEnvAsInt64("TRUST_TOLERANCE_CENTS", 1),
			ValidationWeight:     getEnvAsFloat("TRUST_VALIDATION_WEIGHT", 0.70),
			ExtractionWeight:     getEnvAsFloat("TRUST_EXTRACTION_WEIGHT", 0.30),
			AutoApproveThreshold: getEnvAsFloat("TRUST_AUTO_APPROVE_THRESHOLD", 0.95),
			VerifyThreshold:      getEnvAsFloat("TRUST_VERIFY_THRESHOLD", 0.85),
		},
		Batch: BatchConfig{
			Workers:        getEnvAsInt("BATCH_WORKERS", 4),
			QueueSize:      getEnvAsInt("BATCH_QUEUE_SIZE", 256),
			ProcessTimeout: getEnvAsDuration("BATCH_PROCESS_TIMEOUT", 30*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
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

// Validate validates the loaded configuration.
func (c *Config) Validate() error {
	if c.Policy.ToleranceCents < 0 {
		return NewAppError("CONFIG_ERROR", "TRUST_TOLERANCE_CENTS must be >= 0", ErrInvalidInput)
	}
	if c.Policy.ValidationWeight < 0 || c.Policy.ExtractionWeight < 0 {
		return NewAppError("CONFIG_ERROR", "confidence weights must be >= 0", ErrInvalidInput)
	}
	sum := c.Policy.ValidationWeight + c.Policy.ExtractionWeight
	if sum < 0.999 || sum > 1.001 {
		return NewAppError("CONFIG_ERROR", "confidence weights must sum to 1.0", ErrInvalidInput)
	}
	if c.Policy.AutoApproveThreshold < c.Policy.VerifyThreshold {
		return NewAppError("CONFIG_ERROR", "TRUST_AUTO_APPROVE_THRESHOLD must be >= TRUST_VERIFY_THRESHOLD", ErrInvalidInput)
	}
	if c.Batch.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "BATCH_WORKERS must be > 0", ErrInvalidInput)
	}
	return nil
}
