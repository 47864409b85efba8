// Package ui provides the web user interface for the storybook generator.
package ui

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/opd-ai/storybook/srv/generator"
)

type GeneratorUI struct {
	router      chi.Router
	deps        generator.Deps
	sessions    map[string]*generator.GenerationProgress
	sessionsM   sync.RWMutex
	msgHistory  map[string]*MessageHistory
	cache       *cache.Cache
	historyFile string
}

func NewGeneratorUI(deps generator.Deps) *GeneratorUI {
	ui := &GeneratorUI{
		router:      chi.NewRouter(),
		deps:        deps,
		sessions:    make(map[string]*generator.GenerationProgress),
		msgHistory:  make(map[string]*MessageHistory),
		cache:       cache.New(24*time.Hour, 1*time.Hour),
		historyFile: "session_history.json",
	}
	generator.SetMessageEmitter(func(sessionID string, msg generator.WSMessage) error {
		ui.AddMessage(sessionID, msg)
		return nil
	})
	ui.loadHistory()
	ui.setupRoutes()
	ui.startCleanup()
	return ui
}

func (ui *GeneratorUI) startCleanup() {
	go func() {
		cleanupTicker := time.NewTicker(10 * time.Minute)
		saveTicker := time.NewTicker(5 * time.Minute)
		defer cleanupTicker.Stop()
		defer saveTicker.Stop()

		for {
			select {
			case <-cleanupTicker.C:
				ui.cleanupOldSessions()
			case <-saveTicker.C:
				ui.saveHistory()
			}
		}
	}()
}

func (ui *GeneratorUI) cleanupOldSessions() {
	ui.sessionsM.Lock()
	changed := false
	for sessionID, history := range ui.msgHistory {
		history.mu.RLock()
		if len(history.Messages) > 0 {
			lastMsg := history.Messages[len(history.Messages)-1]
			if time.Since(lastMsg.Timestamp) > 1*time.Hour {
				delete(ui.msgHistory, sessionID)
				changed = true
			}
		}
		history.mu.RUnlock()
	}
	ui.sessionsM.Unlock()

	if changed {
		ui.saveHistory()
	}
}

func (ui *GeneratorUI) loadHistory() {
	file, err := os.OpenFile(ui.historyFile, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		log.Printf("Error opening history file: %v", err)
		return
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	var history map[string]*MessageHistory
	if err := decoder.Decode(&history); err != nil && err != io.EOF {
		log.Printf("Error decoding history: %v", err)
	} else if err == nil {
		ui.msgHistory = history
	}
}

func (ui *GeneratorUI) saveHistory() {
	ui.sessionsM.RLock()
	defer ui.sessionsM.RUnlock()

	file, err := os.OpenFile(ui.historyFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		log.Printf("Error opening history file for writing: %v", err)
		return
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	if err := encoder.Encode(ui.msgHistory); err != nil {
		log.Printf("Error encoding history: %v", err)
	}
}

func (ui *GeneratorUI) AddMessage(sessionID string, msg generator.WSMessage) {
	ui.sessionsM.Lock()
	history, exists := ui.msgHistory[sessionID]
	if !exists {
		history = &MessageHistory{
			Messages: make([]generator.WSMessage, 0),
		}
		ui.msgHistory[sessionID] = history
	}
	ui.sessionsM.Unlock()

	history.AddMessage(msg)
}

// lookupSession finds a session among the active ones or, for
// finished generations, in the cache.
func (ui *GeneratorUI) lookupSession(sessionID string) (*generator.GenerationProgress, bool) {
	ui.sessionsM.RLock()
	progress, exists := ui.sessions[sessionID]
	ui.sessionsM.RUnlock()
	if exists {
		return progress, true
	}

	if cached, found := ui.cache.Get(sessionID); found {
		return cached.(*generator.GenerationProgress), true
	}
	return nil, false
}

func (ui *GeneratorUI) cleanupSession(sessionID string, progress *generator.GenerationProgress) {
	progress.SetActive(false)
	progress.Close()

	ui.sessionsM.Lock()
	delete(ui.sessions, sessionID)
	ui.sessionsM.Unlock()

	// Keep the finished session around so the download link and
	// message replay keep working after the websocket goes away.
	ui.cache.Set(sessionID, progress, 24*time.Hour)

	ui.saveHistory()
}

func (ui *GeneratorUI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ui.router.ServeHTTP(w, r)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Expose-Headers", "X-Session-Id")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (ui *GeneratorUI) setupRoutes() {
	ui.router.Use(middleware.Logger)
	ui.router.Use(middleware.Recoverer)
	ui.router.Use(corsMiddleware)

	// Session management middleware
	ui.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("session_id")
			if err != nil || cookie.Value == "" {
				sessionID := uuid.New().String()
				http.SetCookie(w, &http.Cookie{
					Name:     "session_id",
					Value:    sessionID,
					Path:     "/",
					MaxAge:   86400, // 24 hours
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r)
		})
	})

	ui.router.Get("/", ui.handleHome)
	ui.router.Get("/health", ui.handleHealth)
	ui.router.With(httprate.LimitByIP(10, 1*time.Minute)).Post("/generate", ui.handleGenerate)
	ui.router.Get("/ws", ui.handleWebSocket)
	ui.router.Get("/api/messages/{sessionID}", ui.handleGetMessages)
	ui.router.Get("/download/{sessionID}", ui.handleDownload)
}
