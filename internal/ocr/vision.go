package ocr

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"
)

// Engine extracts raw text from a card image.
type Engine interface {
	ExtractText(ctx context.Context, imageData []byte) (string, error)
}

const visionPrompt = "Transcribe every piece of text printed on this business card. " +
	"Output the text exactly as it appears, one item per line. " +
	"Do not describe the card, translate, or add commentary."

// VisionEngine runs OCR through an Ollama vision model.
type VisionEngine struct {
	client *api.Client
	model  string
}

// NewVisionEngine creates an engine against the given Ollama server URL.
func NewVisionEngine(serverURL, model string) (*VisionEngine, error) {
	if serverURL == "" {
		serverURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.2-vision"
	}
	parsed, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama URL: %v", err)
	}
	base := &url.URL{Scheme: parsed.Scheme, Host: parsed.Host}
	return &VisionEngine{
		client: api.NewClient(base, http.DefaultClient),
		model:  model,
	}, nil
}

// ExtractText asks the vision model for a verbatim transcription.
func (e *VisionEngine) ExtractText(ctx context.Context, imageData []byte) (string, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 120*time.Second)
		defer cancel()
	}

	streamFalse := false
	req := &api.ChatRequest{
		Model: e.model,
		Messages: []api.Message{
			{
				Role:    "user",
				Content: visionPrompt,
				Images:  []api.ImageData{api.ImageData(imageData)},
			},
		},
		Stream: &streamFalse,
	}

	var text string
	err := e.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		text = resp.Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("vision model error: %v", err)
	}
	return text, nil
}
