package storybook

import (
	"fmt"

	"github.com/opd-ai/horde"
)

// HordeClient generates images through the crowdsourced AI Horde
// network. Slower than the hosted backends but free.
type HordeClient struct {
	*horde.Client
}

func NewHordeClient(apiKey string) *HordeClient {
	return &HordeClient{
		Client: horde.NewClient(apiKey),
	}
}

func (c *HordeClient) ImageGenerate(prompt string, progress Progressor) ([]byte, error) {
	pr := progressOr(progress)

	pr.UpdateOutput(fmt.Sprintf("Starting image generation: prompt=%q, steps=%d, width=%d, height=%d",
		prompt, imageSteps, imageWidth, imageHeight))

	req := horde.GenerationRequest{
		Prompt: prompt,
		Params: horde.Params{
			Steps:     imageSteps,
			Width:     imageWidth,
			Height:    imageHeight,
			ModelName: horde.DefaultModel,
		},
	}

	pr.UpdateOutput("Submitting generation request...")
	resp, err := c.RequestGeneration(req)
	if err != nil {
		return nil, fmt.Errorf("requesting generation: %w", err)
	}
	pr.UpdateOutput(fmt.Sprintf("Request accepted, got ID: %s", resp.ID))

	pr.UpdateOutput("Waiting for generation to complete...")
	status, err := c.WaitForCompletion(resp.ID)
	if err != nil {
		return nil, fmt.Errorf("waiting for completion: %w", err)
	}
	if len(status.Generation) == 0 {
		return nil, fmt.Errorf("no results returned")
	}

	pr.UpdateOutput("Downloading generated image...")
	imageData, err := c.DownloadImage(status.Generation[0].Image)
	if err != nil {
		return nil, fmt.Errorf("downloading image: %w", err)
	}
	pr.UpdateOutput(fmt.Sprintf("Successfully downloaded image: %d bytes", len(imageData)))

	return imageData, nil
}
