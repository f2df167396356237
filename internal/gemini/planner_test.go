package gemini

import (
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/kawohq/videogen/internal/videogen"
)

func TestNormalizeScenes(t *testing.T) {
	tests := []struct {
		name string
		in   []videogen.Scene
		want []videogen.Scene
	}{
		{
			name: "well formed plan is unchanged",
			in: []videogen.Scene{
				{SequenceNumber: 1, Description: "opening", DurationEstimate: 6, CameraAngle: "wide shot", Lighting: "golden hour"},
			},
			want: []videogen.Scene{
				{SequenceNumber: 1, Description: "opening", DurationEstimate: 6, CameraAngle: "wide shot", Lighting: "golden hour"},
			},
		},
		{
			name: "missing fields get defaults",
			in: []videogen.Scene{
				{Description: "a quiet street", DurationEstimate: 7},
			},
			want: []videogen.Scene{
				{SequenceNumber: 1, Description: "a quiet street", DurationEstimate: 7, CameraAngle: defaultCameraAngle, Lighting: defaultLighting},
			},
		},
		{
			name: "durations are clamped",
			in: []videogen.Scene{
				{SequenceNumber: 1, Description: "rush", DurationEstimate: 2, CameraAngle: "close-up", Lighting: "neon"},
				{SequenceNumber: 2, Description: "linger", DurationEstimate: 45, CameraAngle: "close-up", Lighting: "neon"},
			},
			want: []videogen.Scene{
				{SequenceNumber: 1, Description: "rush", DurationEstimate: minSceneSeconds, CameraAngle: "close-up", Lighting: "neon"},
				{SequenceNumber: 2, Description: "linger", DurationEstimate: maxSceneSeconds, CameraAngle: "close-up", Lighting: "neon"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeScenes(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d scenes, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("scene %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizeScenesTruncatesOverlongPlans(t *testing.T) {
	in := make([]videogen.Scene, maxScenes+3)
	for i := range in {
		in[i] = videogen.Scene{SequenceNumber: i + 1, Description: "scene", DurationEstimate: 6}
	}

	got := normalizeScenes(in)
	if len(got) != maxScenes {
		t.Errorf("got %d scenes, want %d", len(got), maxScenes)
	}
}

func TestScenePlanSchema(t *testing.T) {
	schema := scenePlanSchema()

	if schema.Type != genai.TypeArray {
		t.Fatalf("schema.Type = %v, want array", schema.Type)
	}
	if schema.Items == nil || schema.Items.Type != genai.TypeObject {
		t.Fatal("schema.Items must be an object schema")
	}

	for _, field := range []string{"sequence_number", "description", "duration_estimate", "camera_angle", "lighting"} {
		if _, ok := schema.Items.Properties[field]; !ok {
			t.Errorf("schema missing property %q", field)
		}
	}

	required := map[string]bool{}
	for _, field := range schema.Items.Required {
		required[field] = true
	}
	for _, field := range []string{"sequence_number", "description", "duration_estimate"} {
		if !required[field] {
			t.Errorf("field %q should be required", field)
		}
	}
	if required["camera_angle"] || required["lighting"] {
		t.Error("camera_angle and lighting must stay optional; defaults are filled locally")
	}
}

func TestNewPlannerRendersSystemPrompt(t *testing.T) {
	p := NewPlanner(nil, "gemini-2.5-flash")

	for _, want := range []string{"1 to 5 scenes", "5 to 8 seconds"} {
		if !strings.Contains(p.systemPrompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}
