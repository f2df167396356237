// Package media shells out to ffmpeg and ffprobe for the video processing
// the pipeline needs: stitching scene clips, probing the result, and
// extracting reference frames for scene-to-scene continuity. The binaries
// must be on PATH; workers verify this at boot.
package media

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/rs/zerolog/log"
)

// CheckFFmpegAvailable verifies that both ffmpeg and ffprobe are on PATH.
// Returns nil if they are available, or an error describing the issue.
func CheckFFmpegAvailable() error {
	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		path, err := exec.LookPath(tool)
		if err != nil {
			return fmt.Errorf("%s not found in PATH: install FFmpeg with: brew install ffmpeg (macOS) or apt install ffmpeg (Linux)", tool)
		}
		log.Debug().Str("tool", tool).Str("path", path).Msg("ffmpeg tool found")
	}
	return nil
}

// runFFmpeg executes ffmpeg with the given arguments, folding its output
// into the error on failure.
func runFFmpeg(ctx context.Context, args []string) error {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	log.Debug().Strs("args", args).Msg("Running ffmpeg")

	start := time.Now()
	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w\nOutput: %s", err, string(output))
	}

	log.Debug().Dur("elapsed", time.Since(start)).Msg("ffmpeg finished")
	return nil
}
