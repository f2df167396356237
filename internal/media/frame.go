package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
)

// ExtractLastFrame writes the final frame of the video at videoPath to
// framePath as PNG, seeking from the end of the stream rather than decoding
// the whole file.
func ExtractLastFrame(ctx context.Context, videoPath, framePath string) error {
	log.Debug().Str("video", videoPath).Str("frame", framePath).Msg("Extracting last frame")
	return runFFmpeg(ctx, lastFrameArgs(videoPath, framePath))
}

func lastFrameArgs(videoPath, framePath string) []string {
	return []string{
		"-v", "error",
		"-y",
		"-sseof", "-0.1",
		"-i", videoPath,
		"-frames:v", "1",
		"-update", "1",
		framePath,
	}
}

// DownscalePNG loads the PNG at path and scales it down so its longest edge
// is at most maxDim, preserving aspect ratio. Images already within bounds
// are returned as read, without re-encoding.
func DownscalePNG(path string, maxDim int) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}

	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxDim && height <= maxDim {
		return data, nil
	}

	scale := float64(maxDim) / float64(max(width, height))
	scaledW := int(math.Round(float64(width) * scale))
	scaledH := int(math.Round(float64(height) * scale))
	dst := image.NewRGBA(image.Rect(0, 0, scaledW, scaledH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}

	log.Debug().
		Int("width", dst.Bounds().Dx()).
		Int("height", dst.Bounds().Dy()).
		Msg("Downscaled reference frame")

	return buf.Bytes(), nil
}
