package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestConcatArgs(t *testing.T) {
	copyArgs := concatArgs("list.txt", "out.mp4", false)
	want := []string{"-v", "error", "-y", "-f", "concat", "-safe", "0", "-i", "list.txt", "-c", "copy", "out.mp4"}
	if !reflect.DeepEqual(copyArgs, want) {
		t.Errorf("concatArgs(copy) = %v, want %v", copyArgs, want)
	}

	reencodeArgs := concatArgs("list.txt", "out.mp4", true)
	joined := strings.Join(reencodeArgs, " ")
	for _, fragment := range []string{"-c:v libx264", "-pix_fmt yuv420p", "-c:a aac"} {
		if !strings.Contains(joined, fragment) {
			t.Errorf("concatArgs(reencode) missing %q: %v", fragment, reencodeArgs)
		}
	}
	if reencodeArgs[len(reencodeArgs)-1] != "out.mp4" {
		t.Errorf("output path must come last, got %v", reencodeArgs)
	}
}

func TestEscapeConcatPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/tmp/scene_1.mp4", "/tmp/scene_1.mp4"},
		{"/tmp/it's here.mp4", `/tmp/it'\''s here.mp4`},
	}
	for _, tt := range tests {
		if got := escapeConcatPath(tt.in); got != tt.want {
			t.Errorf("escapeConcatPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteConcatList(t *testing.T) {
	listPath, cleanup, err := writeConcatList([]string{"/tmp/a.mp4", "/tmp/b's.mp4"})
	if err != nil {
		t.Fatalf("writeConcatList returned error: %v", err)
	}
	defer cleanup()

	data, err := os.ReadFile(listPath)
	if err != nil {
		t.Fatalf("reading list file: %v", err)
	}
	want := "file '/tmp/a.mp4'\nfile '/tmp/b'\\''s.mp4'\n"
	if string(data) != want {
		t.Errorf("list file = %q, want %q", data, want)
	}

	cleanup()
	if _, err := os.Stat(listPath); !os.IsNotExist(err) {
		t.Errorf("cleanup did not remove the list file")
	}
}

func TestConcatRejectsEmptyInput(t *testing.T) {
	err := Concat(context.Background(), nil, "out.mp4", false)
	if err == nil {
		t.Fatal("Concat with no clips succeeded, want error")
	}
	if !strings.Contains(err.Error(), "no clips") {
		t.Errorf("error = %q, want mention of missing clips", err)
	}
}

func TestLastFrameArgs(t *testing.T) {
	args := lastFrameArgs("in.mp4", "frame.png")
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-sseof -0.1") {
		t.Errorf("lastFrameArgs must seek from the end: %v", args)
	}
	if !strings.Contains(joined, "-frames:v 1") {
		t.Errorf("lastFrameArgs must emit a single frame: %v", args)
	}
	if args[len(args)-1] != "frame.png" {
		t.Errorf("frame path must come last, got %v", args)
	}
}

func TestParseProbeOutput(t *testing.T) {
	raw := []byte(`{
		"streams": [
			{"codec_type": "audio", "codec_name": "aac"},
			{"codec_type": "video", "codec_name": "h264", "width": 1280, "height": 720}
		],
		"format": {"duration": "23.480000"}
	}`)

	result, err := parseProbeOutput(raw)
	if err != nil {
		t.Fatalf("parseProbeOutput returned error: %v", err)
	}
	if result.DurationSeconds != 23.48 {
		t.Errorf("DurationSeconds = %v, want 23.48", result.DurationSeconds)
	}
	if result.Width != 1280 || result.Height != 720 {
		t.Errorf("dimensions = %dx%d, want 1280x720", result.Width, result.Height)
	}
	if result.VideoCodec != "h264" {
		t.Errorf("VideoCodec = %q, want h264", result.VideoCodec)
	}
}

func TestParseProbeOutputErrors(t *testing.T) {
	if _, err := parseProbeOutput([]byte("not json")); err == nil {
		t.Error("parseProbeOutput accepted non-JSON input")
	}
	if _, err := parseProbeOutput([]byte(`{"format": {"duration": "soon"}}`)); err == nil {
		t.Error("parseProbeOutput accepted unparseable duration")
	}

	// Missing duration and streams is not an error: stream-copied containers
	// occasionally omit fields, and callers treat zeros as unknown.
	result, err := parseProbeOutput([]byte(`{}`))
	if err != nil {
		t.Fatalf("parseProbeOutput({}) returned error: %v", err)
	}
	if result.DurationSeconds != 0 || result.Width != 0 {
		t.Errorf("empty probe should yield zero values, got %+v", result)
	}
}

func writeTestPNG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x % 256), A: 255})
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
}

func TestDownscalePNG(t *testing.T) {
	dir := t.TempDir()

	small := filepath.Join(dir, "small.png")
	writeTestPNG(t, small, 320, 180)
	data, err := DownscalePNG(small, 1280)
	if err != nil {
		t.Fatalf("DownscalePNG(small) returned error: %v", err)
	}
	original, _ := os.ReadFile(small)
	if len(data) != len(original) {
		t.Errorf("image within bounds should be returned as read")
	}

	large := filepath.Join(dir, "large.png")
	writeTestPNG(t, large, 1920, 1080)
	data, err = DownscalePNG(large, 1280)
	if err != nil {
		t.Fatalf("DownscalePNG(large) returned error: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("result is not valid PNG: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 1280 {
		t.Errorf("width = %d, want 1280", bounds.Dx())
	}
	if bounds.Dy() != 720 {
		t.Errorf("height = %d, want 720", bounds.Dy())
	}
}

func TestDownscalePNGRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bogus.png")
	if err := os.WriteFile(path, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := DownscalePNG(path, 1280); err == nil {
		t.Error("DownscalePNG accepted a non-image file")
	}
}
