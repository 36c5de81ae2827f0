// Package config holds planner and renderer settings. Values come from the
// environment with sensible defaults, loaded once at startup.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration for the composition pipeline.
type Config struct {
	// SpeedFactor is the narration speed multiplier. All planned timings
	// are divided by it.
	SpeedFactor float64

	// OverlayRotationPeriod is the seconds per full turn of the brand
	// overlay.
	OverlayRotationPeriod float64

	// MusicFadeDuration is the background music fade-out length in seconds.
	MusicFadeDuration float64

	// MinRenderableSpan is the shortest segment duration worth planning,
	// one frame by default.
	MinRenderableSpan float64

	// Seed makes asset selection reproducible when non-zero.
	Seed int64

	// GenerateTimeout bounds a single asset-generation call.
	GenerateTimeout time.Duration

	MediaLibraryDir string
	MusicDir        string
	InputDir        string
	OutputDir       string

	// S3Bucket enables artifact upload when set.
	S3Bucket string

	// RedisAddr enables cross-video asset recency tracking when set.
	RedisAddr string
}

// Load reads configuration from the environment. A .env file is honored if
// present so local runs do not need exported variables.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		SpeedFactor:           envFloat("SPEED_FACTOR", 1.2),
		OverlayRotationPeriod: envFloat("OVERLAY_ROTATION_PERIOD", 3.0),
		MusicFadeDuration:     envFloat("MUSIC_FADE_DURATION", 2.0),
		MinRenderableSpan:     envFloat("MIN_RENDERABLE_SPAN", 1.0/FrameRate),
		Seed:                  envInt64("PLANNER_SEED", 0),
		GenerateTimeout:       time.Duration(envFloat("GENERATE_TIMEOUT_SECONDS", 60)) * time.Second,
		MediaLibraryDir:       envString("MEDIA_LIBRARY_DIR", "media_library"),
		MusicDir:              envString("BACKGROUND_MUSIC_DIR", "background_music"),
		InputDir:              envString("INPUT_DIR", "input"),
		OutputDir:             envString("OUTPUT_DIR", "output"),
		S3Bucket:              os.Getenv("S3_BUCKET"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
	}
}

// Validate rejects settings the planner cannot work with. Called once at
// startup so bad values fail fast instead of producing broken plans.
func (c Config) Validate() error {
	if c.SpeedFactor <= 0 {
		return fmt.Errorf("speed factor must be positive, got %v", c.SpeedFactor)
	}
	if c.OverlayRotationPeriod <= 0 {
		return fmt.Errorf("overlay rotation period must be positive, got %v", c.OverlayRotationPeriod)
	}
	if c.MusicFadeDuration < 0 {
		return fmt.Errorf("music fade duration must not be negative, got %v", c.MusicFadeDuration)
	}
	if c.MinRenderableSpan <= 0 {
		return fmt.Errorf("minimum renderable span must be positive, got %v", c.MinRenderableSpan)
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return n
}
