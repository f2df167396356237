package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/kawohq/videogen/internal/videogen"
)

// Rendering guardrails passed with every request.
const (
	personGeneration = "allow_adult"
	negativePrompt   = "text,text overlay,text on screen"
	numberOfVideos   = 1
)

const defaultPollInterval = 10 * time.Second

// Veo renders clips with Google's Veo models through the long-running
// operations API: start the job, poll until done, download the result.
type Veo struct {
	client *genai.Client
	model  string

	// AspectRatio is 16:9 or 9:16.
	AspectRatio string

	// ClipSeconds is the requested clip duration.
	ClipSeconds int32

	// PollInterval overrides how often the remote operation is polled.
	PollInterval time.Duration

	// OnPoll, when set, runs after every poll of the remote operation.
	// Workers use it to record activity heartbeats.
	OnPoll func(ctx context.Context, polls int)
}

var _ videogen.ClipRenderer = (*Veo)(nil)

// NewVeo builds a renderer on the given model, e.g. veo-2.0-generate-001.
func NewVeo(client *genai.Client, model string) *Veo {
	return &Veo{
		client:      client,
		model:       model,
		AspectRatio: "16:9",
		ClipSeconds: 8,
	}
}

// RenderClip starts a video generation job for the request, polls it to
// completion, and returns the downloaded clip bytes.
func (v *Veo) RenderClip(ctx context.Context, req videogen.ClipRequest) (*videogen.ClipResult, error) {
	start := time.Now()
	log.Info().
		Int("scene", req.SequenceNumber).
		Str("model", v.model).
		Bool("reference_image", req.ImageBytes != nil).
		Msg("Starting clip rendering")

	var image *genai.Image
	if req.ImageBytes != nil {
		image = &genai.Image{ImageBytes: req.ImageBytes, MIMEType: req.ImageMIMEType}
	}

	operation, err := v.client.Models.GenerateVideos(ctx, v.model, req.Prompt, image, v.videosConfig())
	if err != nil {
		return nil, ClassifyError(fmt.Errorf("start video generation: %w", err))
	}

	operation, err = v.awaitOperation(ctx, operation)
	if err != nil {
		return nil, err
	}

	if operation.Response == nil || len(operation.Response.GeneratedVideos) == 0 {
		return nil, fmt.Errorf("no video was generated for scene %d", req.SequenceNumber)
	}

	// numberOfVideos is 1, so only the first entry matters.
	video := operation.Response.GeneratedVideos[0].Video
	data, err := v.client.Files.Download(ctx, video, nil)
	if err != nil {
		return nil, ClassifyError(fmt.Errorf("download generated video: %w", err))
	}

	log.Info().
		Int("scene", req.SequenceNumber).
		Dur("elapsed", time.Since(start)).
		Int("size_bytes", len(data)).
		Msg("Clip rendered")

	mimeType := video.MIMEType
	if mimeType == "" {
		mimeType = "video/mp4"
	}
	return &videogen.ClipResult{VideoBytes: data, MIMEType: mimeType}, nil
}

func (v *Veo) videosConfig() *genai.GenerateVideosConfig {
	return &genai.GenerateVideosConfig{
		NumberOfVideos:   numberOfVideos,
		AspectRatio:      v.AspectRatio,
		DurationSeconds:  genai.Ptr[int32](v.ClipSeconds),
		PersonGeneration: personGeneration,
		NegativePrompt:   negativePrompt,
	}
}

// awaitOperation polls the remote job until it finishes, honoring context
// cancellation between polls.
func (v *Veo) awaitOperation(ctx context.Context, operation *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	interval := v.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	polls := 0
	for !operation.Done {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}

		var err error
		operation, err = v.client.Operations.GetVideosOperation(ctx, operation, nil)
		if err != nil {
			return nil, ClassifyError(fmt.Errorf("poll video generation: %w", err))
		}

		polls++
		log.Debug().Int("polls", polls).Bool("done", operation.Done).Msg("Waiting for video generation")
		if v.OnPoll != nil {
			v.OnPoll(ctx, polls)
		}
	}

	if len(operation.Error) > 0 {
		return nil, fmt.Errorf("video generation failed: %v", operation.Error)
	}
	return operation, nil
}
