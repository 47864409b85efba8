package generator

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"testing"
	"time"

	storybook "github.com/opd-ai/storybook/src"
)

type fakeStoryClient struct {
	response string
	err      error
}

func (f *fakeStoryClient) SendMessage(systemPrompt, userPrompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeImageClient struct {
	failAt int // 1-based call number that fails, 0 for none
	calls  int
}

func (f *fakeImageClient) ImageGenerate(prompt string, progress storybook.Progressor) ([]byte, error) {
	f.calls++
	if f.calls == f.failAt {
		return nil, fmt.Errorf("simulated image failure")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newTestProgress() *GenerationProgress {
	return &GenerationProgress{
		SessionID: "test-session",
		Done:      make(chan bool),
		StartTime: time.Now(),
		State:     StateInitialized,
		IsActive:  true,
	}
}

func testRequest() storybook.StoryRequest {
	return storybook.StoryRequest{
		Idea:  "a lone warrior with a magical sword",
		Genre: storybook.GenreFantasy,
		Parts: 3,
	}
}

const testStory = "Part one\nIMAGE_PROMPT: a warrior on a cliff\nPart two\nIMAGE_PROMPT: a glowing sword\nPart three"

func TestGenerateStorybook(t *testing.T) {
	progress := newTestProgress()
	deps := Deps{
		Story:  &fakeStoryClient{response: testStory},
		Images: &fakeImageClient{},
	}

	if err := GenerateStorybook(progress, deps, testRequest()); err != nil {
		t.Fatalf("GenerateStorybook() error = %v", err)
	}

	if progress.GetState() != StateCompleted {
		t.Errorf("state = %s, want %s", progress.GetState(), StateCompleted)
	}
	doc, name, ok := progress.Document()
	if !ok {
		t.Fatal("document should be available after completion")
	}
	if name != "fantasy_story.pdf" {
		t.Errorf("file name = %q", name)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF-")) {
		t.Error("document is not a PDF")
	}
}

func TestGenerateStorybookStoryFailureIsFatal(t *testing.T) {
	progress := newTestProgress()
	images := &fakeImageClient{}
	deps := Deps{
		Story:  &fakeStoryClient{err: fmt.Errorf("model unavailable")},
		Images: images,
	}

	if err := GenerateStorybook(progress, deps, testRequest()); err == nil {
		t.Fatal("expected error from failed story generation")
	}
	if images.calls != 0 {
		t.Errorf("no images should be attempted after a fatal generation failure, got %d calls", images.calls)
	}
	if _, _, ok := progress.Document(); ok {
		t.Error("no document should exist after a fatal failure")
	}
}

func TestGenerateStorybookToleratesImageFailures(t *testing.T) {
	progress := newTestProgress()
	images := &fakeImageClient{failAt: 1}
	deps := Deps{
		Story:  &fakeStoryClient{response: testStory},
		Images: images,
	}

	if err := GenerateStorybook(progress, deps, testRequest()); err != nil {
		t.Fatalf("GenerateStorybook() error = %v", err)
	}
	if images.calls != 2 {
		t.Errorf("both prompts should be attempted, got %d calls", images.calls)
	}
	if _, _, ok := progress.Document(); !ok {
		t.Error("document should still assemble with a failed image")
	}
}

func TestGenerateStorybookTextOnly(t *testing.T) {
	progress := newTestProgress()
	deps := Deps{
		Story:  &fakeStoryClient{response: "A story with no markers at all."},
		Images: &fakeImageClient{},
	}

	if err := GenerateStorybook(progress, deps, testRequest()); err != nil {
		t.Fatalf("GenerateStorybook() error = %v", err)
	}
	doc, _, ok := progress.Document()
	if !ok || len(doc) == 0 {
		t.Error("a text-only document should still be produced")
	}
}

func TestProgressMessagesReachEmitter(t *testing.T) {
	var emitted []WSMessage
	SetMessageEmitter(func(sessionID string, msg WSMessage) error {
		emitted = append(emitted, msg)
		return nil
	})
	defer SetMessageEmitter(nil)

	progress := newTestProgress()
	deps := Deps{
		Story:  &fakeStoryClient{response: testStory},
		Images: &fakeImageClient{},
	}
	if err := GenerateStorybook(progress, deps, testRequest()); err != nil {
		t.Fatalf("GenerateStorybook() error = %v", err)
	}

	if len(emitted) == 0 {
		t.Fatal("progress messages should reach the emitter without a websocket")
	}
	sawStory := false
	for _, msg := range emitted {
		if msg.Output == testStory {
			sawStory = true
		}
	}
	if !sawStory {
		t.Error("story text should be carried in the message stream")
	}
}
