package gemini

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/kawohq/videogen/internal/assets"
	"github.com/kawohq/videogen/internal/jsonutil"
	"github.com/kawohq/videogen/internal/videogen"
)

// Scene plans stay within these bounds so every clip fits the video model's
// supported duration.
const (
	maxScenes       = 5
	minSceneSeconds = 5
	maxSceneSeconds = 8
)

// Defaults substituted when the model leaves optional scene fields empty.
const (
	defaultCameraAngle = "overhead shot"
	defaultLighting    = "natural daylight"
)

// Planner expands a user prompt into an ordered scene plan with Gemini's
// structured output mode.
type Planner struct {
	client       *genai.Client
	model        string
	systemPrompt string
}

var _ videogen.ScenePlanner = (*Planner)(nil)

// NewPlanner builds a Planner on the given model, e.g. gemini-2.5-flash.
func NewPlanner(client *genai.Client, model string) *Planner {
	return &Planner{
		client: client,
		model:  model,
		systemPrompt: assets.RenderScenePlanPrompt(assets.ScenePlanData{
			MaxScenes:  maxScenes,
			MinSeconds: minSceneSeconds,
			MaxSeconds: maxSceneSeconds,
		}),
	}
}

// PlanScenes asks the model to break the prompt into scenes and returns them
// normalized: sequence numbers assigned, durations clamped, defaults filled.
func (p *Planner) PlanScenes(ctx context.Context, prompt string) ([]videogen.Scene, error) {
	log.Debug().Str("model", p.model).Int("prompt_length", len(prompt)).Msg("Requesting scene plan")

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: p.systemPrompt}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   scenePlanSchema(),
		// Dynamic thinking: the model decides how much reasoning the plan needs.
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](-1)},
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), config)
	if err != nil {
		return nil, ClassifyError(fmt.Errorf("generate scene plan: %w", err))
	}

	scenes, err := jsonutil.ParseJSON[[]videogen.Scene](resp.Text())
	if err != nil {
		return nil, fmt.Errorf("parse scene plan: %w", err)
	}

	scenes = normalizeScenes(scenes)
	log.Info().Int("scenes", len(scenes)).Msg("Scene plan generated")
	return scenes, nil
}

// scenePlanSchema constrains the model's JSON output to an array of scenes.
// Camera angle and lighting are optional; normalizeScenes fills defaults.
func scenePlanSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"sequence_number": {
					Type:        genai.TypeInteger,
					Description: "1-based position of the scene in the story.",
				},
				"description": {
					Type:        genai.TypeString,
					Description: "A detailed description of what happens in this scene.",
				},
				"duration_estimate": {
					Type:        genai.TypeInteger,
					Description: "Estimated duration of the scene in seconds (5-8).",
				},
				"camera_angle": {
					Type:        genai.TypeString,
					Description: "The camera angle for this scene.",
				},
				"lighting": {
					Type:        genai.TypeString,
					Description: "The lighting for this scene.",
				},
			},
			Required: []string{"sequence_number", "description", "duration_estimate"},
		},
	}
}

// normalizeScenes enforces the plan bounds on model output: at most
// maxScenes scenes, positive sequence numbers, durations clamped to the
// clip length range, and defaults for empty camera or lighting fields.
func normalizeScenes(scenes []videogen.Scene) []videogen.Scene {
	if len(scenes) > maxScenes {
		scenes = scenes[:maxScenes]
	}
	for i := range scenes {
		if scenes[i].SequenceNumber <= 0 {
			scenes[i].SequenceNumber = i + 1
		}
		if scenes[i].DurationEstimate < minSceneSeconds {
			scenes[i].DurationEstimate = minSceneSeconds
		}
		if scenes[i].DurationEstimate > maxSceneSeconds {
			scenes[i].DurationEstimate = maxSceneSeconds
		}
		if scenes[i].CameraAngle == "" {
			scenes[i].CameraAngle = defaultCameraAngle
		}
		if scenes[i].Lighting == "" {
			scenes[i].Lighting = defaultLighting
		}
	}
	return scenes
}
