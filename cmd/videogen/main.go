package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.temporal.io/sdk/client"

	"github.com/kawohq/videogen/internal/config"
	"github.com/kawohq/videogen/internal/logging"
	"github.com/kawohq/videogen/internal/videogen"
)

// CLI flags
var (
	promptFlag     string
	outputFlag     string
	continuityFlag bool
	reencodeFlag   bool
	detachFlag     bool
	timeoutFlag    time.Duration
)

// rootCmd is the main Cobra command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "videogen",
	Short: "Generate a multi-scene AI video from a text prompt",
	Long: `Videogen submits a video generation request to the Temporal server and
waits for the finished video's storage URI.

The prompt is expanded into a short scene plan, each scene is rendered by
the video model, and the clips are stitched into a single MP4 staged in the
worker's blob store. A videogen-worker must be running on the task queue.

Examples:
  videogen --prompt "A corgi surfing at sunset"
  videogen -p "A neon city timelapse" --output city.mp4 --reencode
  videogen -p "A paper boat rides a gutter stream" --continuity
  videogen -p "A glassblower shapes a vase" --detach`,
	Run: runMain,
}

func init() {
	rootCmd.Flags().StringVarP(&promptFlag, "prompt", "p", "", "Description of the video to generate")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "File name for the final video (default "+videogen.DefaultOutputName+")")
	rootCmd.Flags().BoolVar(&continuityFlag, "continuity", false, "Render scenes sequentially, seeding each from the previous clip's last frame")
	rootCmd.Flags().BoolVar(&reencodeFlag, "reencode", false, "Re-encode while stitching instead of stream copy (slower, tolerates mismatched clips)")
	rootCmd.Flags().BoolVar(&detachFlag, "detach", false, "Start the workflow and exit without waiting for the result")
	rootCmd.Flags().DurationVar(&timeoutFlag, "timeout", 30*time.Minute, "How long to wait for the result (0 = no limit)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runMain is the main execution logic called by Cobra.
func runMain(cmd *cobra.Command, args []string) {
	logging.Init()

	if strings.TrimSpace(promptFlag) == "" {
		fmt.Fprintln(os.Stderr, "Error: --prompt is required")
		cmd.Usage()
		os.Exit(1)
	}

	tcfg := config.LoadTemporal()

	c, err := client.Dial(client.Options{
		HostPort:  tcfg.HostPort,
		Namespace: tcfg.Namespace,
		Logger:    logging.NewTemporalLogger(log.Logger),
	})
	if err != nil {
		log.Fatal().Err(err).Str("host", tcfg.HostPort).Msg("Failed to connect to Temporal")
	}
	defer c.Close()

	input := videogen.GenerateInput{
		Prompt:     promptFlag,
		OutputName: outputFlag,
		Continuity: continuityFlag,
		Reencode:   reencodeFlag,
	}

	ctx := context.Background()
	run, err := c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        "video-gen-workflow-" + uuid.NewString(),
		TaskQueue: tcfg.TaskQueue,
	}, videogen.WorkflowName, input)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start workflow")
	}

	log.Info().
		Str("workflow_id", run.GetID()).
		Str("run_id", run.GetRunID()).
		Str("task_queue", tcfg.TaskQueue).
		Msg("Workflow started")

	if detachFlag {
		fmt.Println(run.GetID())
		return
	}

	waitCtx := ctx
	if timeoutFlag > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, timeoutFlag)
		defer cancel()
	}

	log.Info().Msg("Waiting for video generation to finish")

	var out videogen.GenerateOutput
	if err := run.Get(waitCtx, &out); err != nil {
		log.Fatal().Err(err).Str("workflow_id", run.GetID()).Msg("Workflow failed")
	}

	log.Info().
		Int("scenes", out.SceneCount).
		Float64("duration_seconds", out.DurationSeconds).
		Msg("Video generation complete")
	fmt.Println(out.URI)
}
