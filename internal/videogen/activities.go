package videogen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/kawohq/videogen/internal/media"
	"github.com/kawohq/videogen/internal/store"
)

// referenceFrameMaxDim caps the longest edge of continuity reference frames
// before they are sent to the video model.
const referenceFrameMaxDim = 1280

// ScenePlanner expands a user prompt into an ordered scene plan.
type ScenePlanner interface {
	PlanScenes(ctx context.Context, prompt string) ([]Scene, error)
}

// ClipRequest is one rendering job for a ClipRenderer.
type ClipRequest struct {
	Prompt         string
	SequenceNumber int

	// ImageBytes, when non-nil, is a reference image (PNG unless
	// ImageMIMEType says otherwise) that seeds the clip's first frame.
	ImageBytes    []byte
	ImageMIMEType string
}

// ClipResult is the rendered clip.
type ClipResult struct {
	VideoBytes []byte
	MIMEType   string
}

// ClipRenderer turns a scene prompt into video bytes, blocking until the
// remote generation job succeeds or fails.
type ClipRenderer interface {
	RenderClip(ctx context.Context, req ClipRequest) (*ClipResult, error)
}

// Activities bundles the worker-side dependencies behind the workflow's
// activity calls. One instance is registered per worker process.
type Activities struct {
	Planner  ScenePlanner
	Renderer ClipRenderer
	Store    store.BlobStore
}

// PlanScenes expands the user prompt into 1-5 scenes.
func (a *Activities) PlanScenes(ctx context.Context, in PlanScenesInput) ([]Scene, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Planning scenes", "prompt_length", len(in.Prompt))

	scenes, err := a.Planner.PlanScenes(ctx, in.Prompt)
	if err != nil {
		return nil, asActivityError(fmt.Errorf("plan scenes: %w", err))
	}
	if len(scenes) == 0 {
		return nil, temporal.NewNonRetryableApplicationError("scene plan is empty", TerminalErrorType, nil)
	}

	logger.Info("Scene plan ready", "scenes", len(scenes))
	return scenes, nil
}

// BuildScenePrompt renders the scene into the prompt handed to the video
// model: action first, then camera, then lighting.
func (a *Activities) BuildScenePrompt(ctx context.Context, scene Scene) (string, error) {
	prompt := videoPromptForScene(scene)
	activity.GetLogger(ctx).Debug("Built scene prompt", "scene", scene.SequenceNumber, "prompt", prompt)
	return prompt, nil
}

func videoPromptForScene(scene Scene) string {
	return fmt.Sprintf("%s. The camera uses %s. The lighting is %s.",
		scene.Description, scene.CameraAngle, scene.Lighting)
}

// GenerateClip renders one scene and stages the resulting clip. The returned
// reference is only produced after the remote generation job has reported
// success and the clip bytes are safely uploaded.
func (a *Activities) GenerateClip(ctx context.Context, in GenerateClipInput) (*ClipReference, error) {
	logger := activity.GetLogger(ctx)
	scene := in.Scene
	logger.Info("Generating clip",
		"scene", scene.SequenceNumber,
		"attempt", activity.GetInfo(ctx).Attempt,
		"continuity", in.PreviousClipKey != "")

	req := ClipRequest{
		Prompt:         scene.VideoPrompt,
		SequenceNumber: scene.SequenceNumber,
	}
	if req.Prompt == "" {
		req.Prompt = videoPromptForScene(scene)
	}

	if in.PreviousClipKey != "" {
		frame, err := a.referenceFrame(ctx, in.PreviousClipKey)
		if err != nil {
			return nil, fmt.Errorf("prepare reference frame for scene %d: %w", scene.SequenceNumber, err)
		}
		req.ImageBytes = frame
		req.ImageMIMEType = "image/png"
	}

	activity.RecordHeartbeat(ctx, fmt.Sprintf("rendering scene %d", scene.SequenceNumber))

	result, err := a.Renderer.RenderClip(ctx, req)
	if err != nil {
		return nil, asActivityError(fmt.Errorf("render scene %d: %w", scene.SequenceNumber, err))
	}

	clipPath, cleanup, err := writeTemp(result.VideoBytes, "videogen-clip-*.mp4")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	key := fmt.Sprintf("%s/scene_%d.mp4", in.StagingPrefix, scene.SequenceNumber)
	if err := a.Store.Upload(ctx, key, clipPath, "video/mp4"); err != nil {
		return nil, fmt.Errorf("upload clip for scene %d: %w", scene.SequenceNumber, err)
	}

	logger.Info("Clip staged",
		"scene", scene.SequenceNumber,
		"key", key,
		"size_bytes", len(result.VideoBytes))

	return &ClipReference{
		SequenceNumber: scene.SequenceNumber,
		Key:            key,
		SizeBytes:      int64(len(result.VideoBytes)),
	}, nil
}

// referenceFrame downloads a staged clip and returns its last frame as PNG
// bytes, downscaled to the video model's reference image bounds.
func (a *Activities) referenceFrame(ctx context.Context, clipKey string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "videogen-frame-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	clipPath := filepath.Join(dir, "previous.mp4")
	if err := a.Store.Download(ctx, clipKey, clipPath); err != nil {
		return nil, fmt.Errorf("download previous clip %s: %w", clipKey, err)
	}

	framePath := filepath.Join(dir, "last_frame.png")
	if err := media.ExtractLastFrame(ctx, clipPath, framePath); err != nil {
		return nil, err
	}
	return media.DownscalePNG(framePath, referenceFrameMaxDim)
}

// MergeClips downloads the staged clips, stitches them in the given order,
// and stages the final video. Returns the staged artifact's key and URI.
func (a *Activities) MergeClips(ctx context.Context, in MergeClipsInput) (*MergeClipsOutput, error) {
	logger := activity.GetLogger(ctx)
	if len(in.Clips) == 0 {
		return nil, temporal.NewNonRetryableApplicationError("no clips to merge", TerminalErrorType, nil)
	}

	outputName := normalizeOutputName(in.OutputName)

	dir, err := os.MkdirTemp("", "videogen-merge-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	paths := make([]string, 0, len(in.Clips))
	for _, clip := range in.Clips {
		path := filepath.Join(dir, fmt.Sprintf("scene_%d.mp4", clip.SequenceNumber))
		if err := a.Store.Download(ctx, clip.Key, path); err != nil {
			return nil, fmt.Errorf("download clip %s: %w", clip.Key, err)
		}
		paths = append(paths, path)
		activity.RecordHeartbeat(ctx, fmt.Sprintf("downloaded %d/%d clips", len(paths), len(in.Clips)))
	}

	outputPath := filepath.Join(dir, outputName)
	if err := media.Concat(ctx, paths, outputPath, in.Reencode); err != nil {
		return nil, fmt.Errorf("concatenate clips: %w", err)
	}
	activity.RecordHeartbeat(ctx, "clips concatenated")

	probe, err := media.Probe(ctx, outputPath)
	if err != nil {
		return nil, fmt.Errorf("probe merged video: %w", err)
	}
	info, err := os.Stat(outputPath)
	if err != nil {
		return nil, fmt.Errorf("stat merged video: %w", err)
	}

	key := in.StagingPrefix + "/" + outputName
	if err := a.Store.Upload(ctx, key, outputPath, "video/mp4"); err != nil {
		return nil, fmt.Errorf("upload merged video: %w", err)
	}

	logger.Info("Final video staged",
		"key", key,
		"size_bytes", info.Size(),
		"duration_seconds", probe.DurationSeconds)

	return &MergeClipsOutput{
		Key:             key,
		URI:             a.Store.URI(key),
		SizeBytes:       info.Size(),
		DurationSeconds: probe.DurationSeconds,
	}, nil
}

// normalizeOutputName reduces a requested output name to a safe file name
// with a container extension.
func normalizeOutputName(name string) string {
	if name == "" {
		name = DefaultOutputName
	}
	name = filepath.Base(name)
	if filepath.Ext(name) == "" {
		name += ".mp4"
	}
	return name
}

// UploadFile stages an arbitrary worker-local file. It is not part of the
// main workflow path; it exists for ad hoc invocations and tooling.
func (a *Activities) UploadFile(ctx context.Context, in UploadFileInput) (string, error) {
	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := a.Store.Upload(ctx, in.Key, in.Path, contentType); err != nil {
		return "", fmt.Errorf("upload %s: %w", in.Path, err)
	}
	return a.Store.URI(in.Key), nil
}

// writeTemp writes data to a fresh temp file. The cleanup function removes it.
func writeTemp(data []byte, pattern string) (string, func(), error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	cleanup := func() { os.Remove(f.Name()) }
	return f.Name(), cleanup, nil
}
