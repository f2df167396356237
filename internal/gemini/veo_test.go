package gemini

import (
	"testing"
)

func TestVideosConfig(t *testing.T) {
	veo := NewVeo(nil, "veo-2.0-generate-001")
	veo.AspectRatio = "9:16"
	veo.ClipSeconds = 6

	config := veo.videosConfig()

	if config.NumberOfVideos != 1 {
		t.Errorf("NumberOfVideos = %d, want 1", config.NumberOfVideos)
	}
	if config.AspectRatio != "9:16" {
		t.Errorf("AspectRatio = %q, want 9:16", config.AspectRatio)
	}
	if config.DurationSeconds == nil || *config.DurationSeconds != 6 {
		t.Errorf("DurationSeconds = %v, want 6", config.DurationSeconds)
	}
	if config.PersonGeneration != personGeneration {
		t.Errorf("PersonGeneration = %q, want %q", config.PersonGeneration, personGeneration)
	}
	if config.NegativePrompt != negativePrompt {
		t.Errorf("NegativePrompt = %q, want %q", config.NegativePrompt, negativePrompt)
	}
}

func TestVeoDefaults(t *testing.T) {
	veo := NewVeo(nil, "veo-2.0-generate-001")

	if veo.AspectRatio != "16:9" {
		t.Errorf("AspectRatio default = %q, want 16:9", veo.AspectRatio)
	}
	if veo.ClipSeconds != 8 {
		t.Errorf("ClipSeconds default = %d, want 8", veo.ClipSeconds)
	}
}
