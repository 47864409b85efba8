package storybook

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// LocalClient generates images through a self-hosted Stable Diffusion
// WebUI instance instead of the hosted Stability API.
type LocalClient struct {
	BaseURL string
	client  *http.Client
}

// sdWebUIRequest represents the request structure for the Stable Diffusion WebUI API
type sdWebUIRequest struct {
	Prompt    string  `json:"prompt"`
	Steps     int     `json:"steps"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	CFGScale  float64 `json:"cfg_scale,omitempty"`
	BatchSize int     `json:"batch_size,omitempty"`
}

// sdWebUIResponse represents the response structure from the Stable Diffusion WebUI API
type sdWebUIResponse struct {
	Images []string `json:"images"`
	Info   string   `json:"info"`
	Error  string   `json:"error,omitempty"`
}

func NewLocalClient(baseURL string) *LocalClient {
	return &LocalClient{
		BaseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Minute, // SD generation can take a while
		},
	}
}

func (l *LocalClient) ImageGenerate(prompt string, progress Progressor) ([]byte, error) {
	pr := progressOr(progress)

	if l.BaseURL == "" {
		return nil, fmt.Errorf("SD_WEBUI_URL environment variable not set")
	}
	pr.UpdateOutput(fmt.Sprintf("Using local SD-WebUI URL: %s", l.BaseURL))

	requestData := sdWebUIRequest{
		Prompt:    prompt,
		Steps:     imageSteps,
		Width:     imageWidth,
		Height:    imageHeight,
		CFGScale:  imageCFGScale,
		BatchSize: imageSamples,
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", l.BaseURL+"/sdapi/v1/txt2img", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	pr.UpdateOutput("Sending request to SD-WebUI...")
	resp, err := l.client.Do(req)
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

	var sdResponse sdWebUIResponse
	if err := json.Unmarshal(body, &sdResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(sdResponse.Images) == 0 {
		return nil, fmt.Errorf("no images generated")
	}

	imageBytes, err := base64.StdEncoding.DecodeString(sdResponse.Images[0])
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	pr.UpdateOutput("Image generation completed successfully")
	return imageBytes, nil
}
