package media

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// Concat stitches the clips at paths, in order, into a single video at
// outputPath using ffmpeg's concat demuxer. With reencode false the streams
// are copied unchanged, which is fast and lossless but requires every clip
// to share codec, dimensions, and timebase; reencode true normalizes the
// clips through libx264 at the cost of a full transcode.
func Concat(ctx context.Context, paths []string, outputPath string, reencode bool) error {
	if len(paths) == 0 {
		return fmt.Errorf("no clips to concatenate")
	}

	listPath, cleanup, err := writeConcatList(paths)
	if err != nil {
		return err
	}
	defer cleanup()

	log.Info().
		Int("clips", len(paths)).
		Str("output", outputPath).
		Bool("reencode", reencode).
		Msg("Concatenating clips")

	return runFFmpeg(ctx, concatArgs(listPath, outputPath, reencode))
}

// writeConcatList writes the temporary list file the concat demuxer reads.
// The cleanup function removes it.
func writeConcatList(paths []string) (string, func(), error) {
	f, err := os.CreateTemp("", "videogen-concat-*.txt")
	if err != nil {
		return "", nil, fmt.Errorf("create concat list: %w", err)
	}

	for _, path := range paths {
		if _, err := fmt.Fprintf(f, "file '%s'\n", escapeConcatPath(path)); err != nil {
			f.Close()
			os.Remove(f.Name())
			return "", nil, fmt.Errorf("write concat list: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("close concat list: %w", err)
	}

	cleanup := func() {
		if err := os.Remove(f.Name()); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", f.Name()).Msg("Failed to remove concat list file")
		}
	}
	return f.Name(), cleanup, nil
}

// escapeConcatPath escapes single quotes per the demuxer's quoting rules.
func escapeConcatPath(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}

func concatArgs(listPath, outputPath string, reencode bool) []string {
	args := []string{"-v", "error", "-y", "-f", "concat", "-safe", "0", "-i", listPath}
	if reencode {
		args = append(args, "-c:v", "libx264", "-pix_fmt", "yuv420p", "-c:a", "aac", "-movflags", "+faststart")
	} else {
		args = append(args, "-c", "copy")
	}
	return append(args, outputPath)
}
