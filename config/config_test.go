package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.SpeedFactor != 1.2 {
		t.Fatalf("SpeedFactor = %v; want 1.2", cfg.SpeedFactor)
	}
	if cfg.OverlayRotationPeriod != 3.0 {
		t.Fatalf("OverlayRotationPeriod = %v; want 3", cfg.OverlayRotationPeriod)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SPEED_FACTOR", "1.5")
	t.Setenv("PLANNER_SEED", "42")
	t.Setenv("MEDIA_LIBRARY_DIR", "/srv/media")

	cfg := Load()
	if cfg.SpeedFactor != 1.5 {
		t.Fatalf("SpeedFactor = %v; want 1.5", cfg.SpeedFactor)
	}
	if cfg.Seed != 42 {
		t.Fatalf("Seed = %v; want 42", cfg.Seed)
	}
	if cfg.MediaLibraryDir != "/srv/media" {
		t.Fatalf("MediaLibraryDir = %q; want /srv/media", cfg.MediaLibraryDir)
	}
}

func TestLoadBadValueFallsBack(t *testing.T) {
	t.Setenv("SPEED_FACTOR", "fast")

	cfg := Load()
	if cfg.SpeedFactor != 1.2 {
		t.Fatalf("SpeedFactor = %v; want fallback 1.2", cfg.SpeedFactor)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"zero speed", func(c *Config) { c.SpeedFactor = 0 }},
		{"negative period", func(c *Config) { c.OverlayRotationPeriod = -1 }},
		{"negative fade", func(c *Config) { c.MusicFadeDuration = -0.5 }},
		{"zero span", func(c *Config) { c.MinRenderableSpan = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Load()
			tc.mut(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("Validate accepted bad config")
			}
		})
	}
}
