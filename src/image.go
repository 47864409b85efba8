package storybook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ImageClient is the outbound interface for image synthesis. A failed
// call affects only its own position in the batch; the pipeline
// records the failure and moves on to the next prompt.
type ImageClient interface {
	ImageGenerate(prompt string, progress Progressor) ([]byte, error)
}

// Fixed generation parameters. These are deliberately not
// user-configurable.
const (
	imageWidth    = 512
	imageHeight   = 512
	imageSteps    = 30
	imageSamples  = 1
	imageCFGScale = 7.0
)

// StabilityEndpoint is the text-to-image endpoint used by
// StabilityClient.
const StabilityEndpoint = "https://api.stability.ai/v1/generation/stable-diffusion-v1-6/text-to-image"

// StabilityClient generates images through the Stability AI REST API.
type StabilityClient struct {
	APIKey   string
	Endpoint string
	client   *http.Client
}

// stabilityRequest represents the request structure for the Stability AI text-to-image API
type stabilityRequest struct {
	TextPrompts []stabilityTextPrompt `json:"text_prompts"`
	CFGScale    float64               `json:"cfg_scale"`
	Height      int                   `json:"height"`
	Width       int                   `json:"width"`
	Samples     int                   `json:"samples"`
	Steps       int                   `json:"steps"`
}

type stabilityTextPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

func NewStabilityClient(apiKey string) *StabilityClient {
	return &StabilityClient{
		APIKey:   apiKey,
		Endpoint: StabilityEndpoint,
		client: &http.Client{
			Timeout: 5 * time.Minute, // image generation can take a while
		},
	}
}

func (c *StabilityClient) ImageGenerate(prompt string, progress Progressor) ([]byte, error) {
	pr := progressOr(progress)

	if c.APIKey == "" {
		// Configuration error: reported without issuing the HTTP call
		// so the pipeline can still produce a text-only document.
		return nil, fmt.Errorf("STABILITY_API_KEY environment variable not set")
	}

	pr.UpdateOutput(fmt.Sprintf("Starting image generation: prompt=%q, steps=%d, width=%d, height=%d",
		prompt, imageSteps, imageWidth, imageHeight))

	requestData := stabilityRequest{
		TextPrompts: []stabilityTextPrompt{
			{Text: prompt, Weight: 1},
		},
		CFGScale: imageCFGScale,
		Height:   imageHeight,
		Width:    imageWidth,
		Samples:  imageSamples,
		Steps:    imageSteps,
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", c.Endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/png")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	pr.UpdateOutput("Sending request to Stability AI...")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	pr.UpdateOutput(fmt.Sprintf("Image generation completed successfully: %d bytes", len(body)))
	return body, nil
}
