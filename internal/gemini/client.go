// Package gemini wraps the Google GenAI SDK for the two model families the
// pipeline uses: Gemini for scene planning and Veo for clip rendering.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// NewClient builds a GenAI client for the Gemini Developer API backend.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return client, nil
}
