package videogen

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
)

// Activity timeouts. Scene planning and prompt building are single
// model calls; rendering covers the video model's long-running operation
// plus the clip upload, with heartbeats every poll; merging covers clip
// downloads plus the ffmpeg run.
const (
	planningTimeout        = 30 * time.Second
	renderTimeout          = 10 * time.Minute
	renderHeartbeatTimeout = 30 * time.Second
	mergeTimeout           = 5 * time.Minute
	mergeHeartbeatTimeout  = time.Minute
)

var (
	planningRetryPolicy = &temporal.RetryPolicy{
		InitialInterval:        time.Second,
		BackoffCoefficient:     2.0,
		MaximumInterval:        30 * time.Second,
		MaximumAttempts:        5,
		NonRetryableErrorTypes: []string{TerminalErrorType},
	}
	renderRetryPolicy = &temporal.RetryPolicy{
		InitialInterval:        5 * time.Second,
		BackoffCoefficient:     2.0,
		MaximumInterval:        time.Minute,
		MaximumAttempts:        3,
		NonRetryableErrorTypes: []string{TerminalErrorType},
	}
	mergeRetryPolicy = &temporal.RetryPolicy{
		InitialInterval:        time.Second,
		BackoffCoefficient:     2.0,
		MaximumInterval:        30 * time.Second,
		MaximumAttempts:        3,
		NonRetryableErrorTypes: []string{TerminalErrorType},
	}
)

// Register wires the workflow and activities onto a worker.
func Register(w worker.Worker, a *Activities) {
	w.RegisterWorkflowWithOptions(GenerateVideo, workflow.RegisterOptions{Name: WorkflowName})
	w.RegisterActivity(a)
}

// GenerateVideo is the video generation workflow. It validates the prompt,
// expands it into scenes, renders each scene (in parallel by default, or
// sequentially with frame continuity), stitches the clips, and returns the
// staged final video.
//
// All artifact state lives in the blob store under a staging prefix derived
// from the workflow's start time, so the function itself stays deterministic
// and replayable.
func GenerateVideo(ctx workflow.Context, input GenerateInput) (*GenerateOutput, error) {
	logger := workflow.GetLogger(ctx)

	if strings.TrimSpace(input.Prompt) == "" {
		return nil, temporal.NewNonRetryableApplicationError("prompt must not be empty", TerminalErrorType, nil)
	}
	if input.OutputName == "" {
		input.OutputName = DefaultOutputName
	}

	stagingPrefix := "videos/" + workflow.Now(ctx).UTC().Format("20060102_150405")
	logger.Info("Starting video generation",
		"staging_prefix", stagingPrefix,
		"continuity", input.Continuity,
		"output_name", input.OutputName)

	var a *Activities

	var scenes []Scene
	err := workflow.ExecuteActivity(
		withPlanningOptions(ctx), a.PlanScenes, PlanScenesInput{Prompt: input.Prompt},
	).Get(ctx, &scenes)
	if err != nil {
		return nil, fmt.Errorf("plan scenes: %w", err)
	}
	logger.Info("Scene plan ready", "scenes", len(scenes))

	// Plans can arrive in any order. Rendering and merging both follow
	// sequence numbers so continuity seeding matches the final cut.
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].SequenceNumber < scenes[j].SequenceNumber
	})

	var clips []ClipReference
	if input.Continuity {
		clips, err = renderSequential(ctx, scenes, stagingPrefix)
	} else {
		clips, err = renderParallel(ctx, scenes, stagingPrefix)
	}
	if err != nil {
		return nil, err
	}

	var merged MergeClipsOutput
	err = workflow.ExecuteActivity(withMergeOptions(ctx), a.MergeClips, MergeClipsInput{
		Clips:         clips,
		StagingPrefix: stagingPrefix,
		OutputName:    input.OutputName,
		Reencode:      input.Reencode,
	}).Get(ctx, &merged)
	if err != nil {
		return nil, fmt.Errorf("merge clips: %w", err)
	}

	logger.Info("Video generation complete",
		"uri", merged.URI,
		"scenes", len(scenes),
		"duration_seconds", merged.DurationSeconds)

	return &GenerateOutput{
		URI:             merged.URI,
		SceneCount:      len(scenes),
		DurationSeconds: merged.DurationSeconds,
	}, nil
}

// renderParallel renders every scene concurrently and returns the staged
// clips in scene order. The first failure, by scene order, aborts the
// workflow.
func renderParallel(ctx workflow.Context, scenes []Scene, stagingPrefix string) ([]ClipReference, error) {
	clips := make([]ClipReference, len(scenes))
	errs := make([]error, len(scenes))

	wg := workflow.NewWaitGroup(ctx)
	for i := range scenes {
		wg.Add(1)
		workflow.Go(ctx, func(ctx workflow.Context) {
			defer wg.Done()
			clips[i], errs[i] = renderScene(ctx, scenes[i], stagingPrefix, "")
		})
	}
	wg.Wait(ctx)

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("scene %d: %w", scenes[i].SequenceNumber, err)
		}
	}
	return clips, nil
}

// renderSequential renders scenes in order, threading each staged clip's key
// into the next scene so its last frame can seed the rendering.
func renderSequential(ctx workflow.Context, scenes []Scene, stagingPrefix string) ([]ClipReference, error) {
	clips := make([]ClipReference, 0, len(scenes))
	previousKey := ""
	for _, scene := range scenes {
		clip, err := renderScene(ctx, scene, stagingPrefix, previousKey)
		if err != nil {
			return nil, fmt.Errorf("scene %d: %w", scene.SequenceNumber, err)
		}
		clips = append(clips, clip)
		previousKey = clip.Key
	}
	return clips, nil
}

// renderScene builds the scene's video prompt and renders the clip.
func renderScene(ctx workflow.Context, scene Scene, stagingPrefix, previousClipKey string) (ClipReference, error) {
	var a *Activities

	var prompt string
	err := workflow.ExecuteActivity(withPlanningOptions(ctx), a.BuildScenePrompt, scene).Get(ctx, &prompt)
	if err != nil {
		return ClipReference{}, fmt.Errorf("build prompt: %w", err)
	}
	scene.VideoPrompt = prompt

	var clip ClipReference
	err = workflow.ExecuteActivity(withRenderOptions(ctx), a.GenerateClip, GenerateClipInput{
		Scene:           scene,
		StagingPrefix:   stagingPrefix,
		PreviousClipKey: previousClipKey,
	}).Get(ctx, &clip)
	if err != nil {
		return ClipReference{}, fmt.Errorf("render clip: %w", err)
	}
	return clip, nil
}

func withPlanningOptions(ctx workflow.Context) workflow.Context {
	return workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: planningTimeout,
		RetryPolicy:         planningRetryPolicy,
	})
}

func withRenderOptions(ctx workflow.Context) workflow.Context {
	return workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: renderTimeout,
		HeartbeatTimeout:    renderHeartbeatTimeout,
		RetryPolicy:         renderRetryPolicy,
	})
}

func withMergeOptions(ctx workflow.Context) workflow.Context {
	return workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: mergeTimeout,
		HeartbeatTimeout:    mergeHeartbeatTimeout,
		RetryPolicy:         mergeRetryPolicy,
	})
}
