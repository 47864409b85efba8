package ui

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	storybook "github.com/opd-ai/storybook/src"
	"github.com/opd-ai/storybook/srv/generator"
	"github.com/opd-ai/storybook/srv/util"
)

//go:embed templates/*
var templateFS embed.FS

func (ui *GeneratorUI) handleHome(w http.ResponseWriter, r *http.Request) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		util.ErrorLogger.Printf("Template parsing error: %v", err)
		http.Error(w, "Failed to load template", http.StatusInternalServerError)
		return
	}

	data := struct {
		Genres   []string
		MinParts int
		MaxParts int
	}{
		Genres:   storybook.Genres,
		MinParts: storybook.MinParts,
		MaxParts: storybook.MaxParts,
	}
	if err := tmpl.Execute(w, data); err != nil {
		util.ErrorLogger.Printf("Template execution error: %v", err)
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

// handleGenerate starts one storybook generation session.
//
// The form carries the three user inputs: 'idea' (free text), 'genre'
// (one of the fixed genres), and 'parts' (2-10). Validation failures
// return 400 before a session is created; generation itself runs in a
// goroutine and reports through the session's websocket. The response
// carries the session ID so the client can connect its websocket and,
// later, fetch the download.
func (ui *GeneratorUI) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	parts, err := strconv.Atoi(r.FormValue("parts"))
	if err != nil {
		http.Error(w, "Part count must be a number", http.StatusBadRequest)
		return
	}
	req := storybook.StoryRequest{
		Idea:  r.FormValue("idea"),
		Genre: r.FormValue("genre"),
		Parts: parts,
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Create new session
	sessionID := uuid.New().String()
	w.Header().Set("X-Session-Id", sessionID)

	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    sessionID,
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	progress := &generator.GenerationProgress{
		SessionID: sessionID,
		Done:      make(chan bool),
		StartTime: time.Now(),
		State:     generator.StateInitialized,
		IsActive:  true,
	}

	ui.sessionsM.Lock()
	ui.sessions[sessionID] = progress
	if _, exists := ui.msgHistory[sessionID]; !exists {
		ui.msgHistory[sessionID] = &MessageHistory{
			Messages: make([]generator.WSMessage, 0),
		}
	}
	ui.sessionsM.Unlock()

	// Start generation immediately, don't wait for WebSocket
	go func() {
		defer ui.cleanupSession(sessionID, progress)

		log.Printf("[Session %s] Starting generation", sessionID)
		if err := generator.GenerateStorybook(progress, ui.deps, req); err != nil {
			util.ErrorLogger.Printf("[Session %s] Generation error: %v", sessionID, err)
			progress.UpdateState(generator.StateError)
			progress.Error = err
			progress.SendUpdate(fmt.Sprintf("Error: %v", err))
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	fmt.Fprintf(w, `{"sessionId": "%s"}`, sessionID)
}

// handleDownload serves the assembled PDF for a finished session. The
// document is held in session memory only; there is nothing on disk
// to serve.
func (ui *GeneratorUI) handleDownload(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if !isValidSession(sessionID) {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	progress, exists := ui.lookupSession(sessionID)
	if !exists {
		util.ErrorLogger.Printf("Download requested for unknown session: %s", sessionID)
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	doc, fileName, ok := progress.Document()
	if !ok {
		http.Error(w, "Document not available", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	w.Header().Set("Content-Type", "application/pdf")
	w.Write(doc)
	util.InfoLogger.Printf("[Session %s] Document downloaded: %s (%d bytes)", sessionID, fileName, len(doc))
}

func (ui *GeneratorUI) handleGetMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if !isValidSession(sessionID) {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	ui.sessionsM.RLock()
	history, exists := ui.msgHistory[sessionID]
	ui.sessionsM.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if !exists {
		w.Write([]byte("[]"))
		return
	}
	writeJSONMessages(w, history.GetMessages())
}

func (ui *GeneratorUI) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status": "ok"}`))
}
