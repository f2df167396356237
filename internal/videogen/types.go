// Package videogen contains the durable workflow and activities that turn a
// text prompt into a finished video: plan scenes with a language model,
// render each scene with a generative video model, stitch the clips with
// ffmpeg, and stage every artifact in a blob store.
package videogen

// WorkflowName is the registered name of the video generation workflow.
// Starters submit executions under this name.
const WorkflowName = "VideoGenerationWorkflow"

// DefaultOutputName is used when a request does not name the final video.
const DefaultOutputName = "final_video.mp4"

// GenerateInput is the workflow request.
type GenerateInput struct {
	// Prompt describes the video to produce. Required.
	Prompt string `json:"prompt"`

	// OutputName is the object name of the stitched video within the
	// workflow's staging prefix. Defaults to DefaultOutputName.
	OutputName string `json:"output_name,omitempty"`

	// Continuity renders scenes one at a time, seeding each clip with the
	// last frame of the previous one for visual coherence. Slower than the
	// default parallel fan-out.
	Continuity bool `json:"continuity,omitempty"`

	// Reencode normalizes codecs while stitching instead of stream-copying.
	Reencode bool `json:"reencode,omitempty"`
}

// GenerateOutput is the workflow result.
type GenerateOutput struct {
	// URI locates the final video, e.g. gs://bucket/videos/20250101_120000/final_video.mp4.
	URI string `json:"uri"`

	// SceneCount is the number of scenes the prompt was expanded into.
	SceneCount int `json:"scene_count"`

	// DurationSeconds is the duration of the stitched video as probed after
	// assembly. Zero when unknown.
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

// Scene is one shot of the planned video. The language model fills the first
// five fields; VideoPrompt is derived afterwards.
type Scene struct {
	SequenceNumber   int    `json:"sequence_number"`
	Description      string `json:"description"`
	DurationEstimate int    `json:"duration_estimate"`
	CameraAngle      string `json:"camera_angle"`
	Lighting         string `json:"lighting"`

	// VideoPrompt is the prompt handed to the video model for this scene.
	VideoPrompt string `json:"video_prompt,omitempty"`
}

// PlanScenesInput is the request for the scene planning activity.
type PlanScenesInput struct {
	Prompt string `json:"prompt"`
}

// GenerateClipInput is the request for the clip rendering activity.
type GenerateClipInput struct {
	Scene Scene `json:"scene"`

	// StagingPrefix is the workflow-scoped key prefix the clip is uploaded
	// under.
	StagingPrefix string `json:"staging_prefix"`

	// PreviousClipKey, when set, is the staged clip whose last frame seeds
	// this scene's rendering. Only used in continuity mode.
	PreviousClipKey string `json:"previous_clip_key,omitempty"`
}

// ClipReference locates one staged scene clip.
type ClipReference struct {
	SequenceNumber int    `json:"sequence_number"`
	Key            string `json:"key"`
	SizeBytes      int64  `json:"size_bytes"`
}

// MergeClipsInput is the request for the assembly activity.
type MergeClipsInput struct {
	// Clips must already be sorted into presentation order.
	Clips []ClipReference `json:"clips"`

	StagingPrefix string `json:"staging_prefix"`
	OutputName    string `json:"output_name"`
	Reencode      bool   `json:"reencode,omitempty"`
}

// MergeClipsOutput describes the staged final video.
type MergeClipsOutput struct {
	Key             string  `json:"key"`
	URI             string  `json:"uri"`
	SizeBytes       int64   `json:"size_bytes"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

// UploadFileInput is the request for the standalone upload activity. Path
// must be local to the worker that picks up the task.
type UploadFileInput struct {
	Path        string `json:"path"`
	Key         string `json:"key"`
	ContentType string `json:"content_type,omitempty"`
}
