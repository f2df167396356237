package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/kawohq/videogen/internal/config"
	"github.com/kawohq/videogen/internal/gemini"
	"github.com/kawohq/videogen/internal/logging"
	"github.com/kawohq/videogen/internal/media"
	"github.com/kawohq/videogen/internal/store"
	"github.com/kawohq/videogen/internal/videogen"
)

// rootCmd is the main Cobra command for the worker.
var rootCmd = &cobra.Command{
	Use:   "videogen-worker",
	Short: "Temporal worker for AI video generation",
	Long: `Videogen Worker hosts the video generation workflow and its activities.

It connects to a Temporal server, listens on the video generation task queue,
and executes scene planning (Gemini), clip rendering (Veo), ffmpeg stitching,
and artifact staging in the configured blob store.

Requires ffmpeg and ffprobe on PATH, a GOOGLE_API_KEY, and a VIDEOGEN_BUCKET.

Examples:
  videogen-worker
  TEMPORAL_ADDRESS=temporal.internal:7233 videogen-worker
  VIDEOGEN_STORAGE_DRIVER=s3 VIDEOGEN_BUCKET=my-bucket videogen-worker`,
	Run: runMain,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runMain is the main execution logic called by Cobra.
func runMain(cmd *cobra.Command, args []string) {
	logging.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// The merge activity shells out to ffmpeg; fail at startup rather than
	// mid-workflow.
	if err := media.CheckFFmpegAvailable(); err != nil {
		log.Fatal().Err(err).Msg("ffmpeg is not available")
	}

	ctx := context.Background()

	genaiClient, err := gemini.NewClient(ctx, cfg.APIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	blobStore, err := store.New(ctx, cfg.StorageDriver, cfg.Bucket)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create blob store")
	}

	veo := gemini.NewVeo(genaiClient, cfg.VeoModel)
	veo.AspectRatio = cfg.AspectRatio
	veo.ClipSeconds = int32(cfg.ClipSeconds)
	// Long renders heartbeat once per poll so stalled jobs are retried
	// instead of silently holding a worker slot.
	veo.OnPoll = func(ctx context.Context, polls int) {
		activity.RecordHeartbeat(ctx, fmt.Sprintf("waiting on video model (poll %d)", polls))
	}

	activities := &videogen.Activities{
		Planner:  gemini.NewPlanner(genaiClient, cfg.GeminiModel),
		Renderer: veo,
		Store:    blobStore,
	}

	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHostPort,
		Namespace: cfg.TemporalNamespace,
		Logger:    logging.NewTemporalLogger(log.Logger),
	})
	if err != nil {
		log.Fatal().Err(err).Str("host", cfg.TemporalHostPort).Msg("Failed to connect to Temporal")
	}
	defer c.Close()

	w := worker.New(c, cfg.TaskQueue, worker.Options{
		MaxConcurrentActivityExecutionSize: cfg.WorkerSlots,
	})
	videogen.Register(w, activities)

	log.Info().
		Str("task_queue", cfg.TaskQueue).
		Str("namespace", cfg.TemporalNamespace).
		Str("gemini_model", cfg.GeminiModel).
		Str("veo_model", cfg.VeoModel).
		Str("storage", cfg.StorageDriver).
		Str("bucket", cfg.Bucket).
		Int("worker_slots", cfg.WorkerSlots).
		Msg("Worker starting")

	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatal().Err(err).Msg("Worker exited with error")
	}
}
