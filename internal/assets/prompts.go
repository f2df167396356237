// Package assets provides embedded prompt templates for the generation
// pipeline.
//
// Prompt text is stored as files under prompts/ and embedded at compile
// time, keeping wording changes out of Go diffs.
package assets

import (
	"bytes"
	_ "embed"
	"text/template"
)

//go:embed prompts/scene-plan-system.txt
var scenePlanSystemTemplate string

// Pre-parsed for efficiency. template.Must panics on malformed templates,
// catching errors at program startup rather than at call time.
var scenePlanTmpl = template.Must(template.New("scene-plan").Parse(scenePlanSystemTemplate))

// ScenePlanData holds the plan bounds injected into the scene planning
// system instruction.
type ScenePlanData struct {
	// MaxScenes is the upper bound on scenes per plan.
	MaxScenes int
	// MinSeconds and MaxSeconds bound each scene's duration, matching the
	// clip lengths the video model supports.
	MinSeconds int
	MaxSeconds int
}

// RenderScenePlanPrompt renders the scene planning system instruction with
// the provided plan bounds.
func RenderScenePlanPrompt(data ScenePlanData) string {
	var buf bytes.Buffer
	// Template execution errors are not expected with our simple templates,
	// but we handle them gracefully by returning whatever was rendered.
	_ = scenePlanTmpl.Execute(&buf, data)
	return buf.String()
}
