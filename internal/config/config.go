// Package config loads runtime settings for the video generation pipeline
// from environment variables, with optional .env overrides for local
// development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultVeoModel      = "veo-2.0-generate-001"
	DefaultAspectRatio   = "16:9"
	DefaultClipSeconds   = 8
	DefaultStorageDriver = "gcs"
	DefaultTemporalHost  = "localhost:7233"
	DefaultNamespace     = "default"
	DefaultTaskQueue     = "video-gen-task-queue"
	DefaultWorkerSlots   = 5
)

// Config carries every setting the worker and starter binaries need.
type Config struct {
	// Google GenAI access and model selection.
	APIKey      string
	GeminiModel string
	VeoModel    string

	// Clip rendering parameters passed to the video model.
	AspectRatio string `validate:"oneof=16:9 9:16"`
	ClipSeconds int    `validate:"min=5,max=8"`

	// Artifact staging.
	StorageDriver string `validate:"oneof=gcs s3"`
	Bucket        string

	// Temporal connection.
	TemporalHostPort  string
	TemporalNamespace string
	TaskQueue         string

	// Worker tuning.
	WorkerSlots int `validate:"min=1"`
}

// TemporalConfig is the subset of settings needed to reach the Temporal
// server. The starter binary loads only this; it has no use for model or
// storage credentials.
type TemporalConfig struct {
	HostPort  string
	Namespace string
	TaskQueue string
}

// LoadTemporal reads the Temporal connection settings from the environment.
// Every field has a working default for a local server.
func LoadTemporal() TemporalConfig {
	_ = godotenv.Load(".env", ".env.local")

	return TemporalConfig{
		HostPort:  getenv("TEMPORAL_ADDRESS", DefaultTemporalHost),
		Namespace: getenv("TEMPORAL_NAMESPACE", DefaultNamespace),
		TaskQueue: getenv("TEMPORAL_TASK_QUEUE", DefaultTaskQueue),
	}
}

// Load reads configuration from the environment. A .env or .env.local file
// in the working directory is merged in first so local runs do not need
// exported variables; values already present in the environment win.
func Load() (*Config, error) {
	// The files are optional outside local development.
	_ = godotenv.Load(".env", ".env.local")

	clipSeconds, err := getenvInt("VIDEOGEN_CLIP_SECONDS", DefaultClipSeconds)
	if err != nil {
		return nil, err
	}
	workerSlots, err := getenvInt("VIDEOGEN_MAX_CONCURRENT", DefaultWorkerSlots)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIKey:            os.Getenv("GOOGLE_API_KEY"),
		GeminiModel:       getenv("VIDEOGEN_GEMINI_MODEL", DefaultGeminiModel),
		VeoModel:          getenv("VIDEOGEN_VEO_MODEL", DefaultVeoModel),
		AspectRatio:       getenv("VIDEOGEN_ASPECT_RATIO", DefaultAspectRatio),
		ClipSeconds:       clipSeconds,
		StorageDriver:     getenv("VIDEOGEN_STORAGE_DRIVER", DefaultStorageDriver),
		Bucket:            os.Getenv("VIDEOGEN_BUCKET"),
		TemporalHostPort:  getenv("TEMPORAL_ADDRESS", DefaultTemporalHost),
		TemporalNamespace: getenv("TEMPORAL_NAMESPACE", DefaultNamespace),
		TaskQueue:         getenv("TEMPORAL_TASK_QUEUE", DefaultTaskQueue),
		WorkerSlots:       workerSlots,
	}

	if cfg.APIKey == "" {
		return nil, errors.New("GOOGLE_API_KEY environment variable is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("VIDEOGEN_BUCKET environment variable is required")
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("invalid configuration: %s", fieldErrs.Error())
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return n, nil
}
