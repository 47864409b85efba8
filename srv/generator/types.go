package generator

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type GenerationState string

const (
	StateInitialized GenerationState = "initialized"
	StateConnected   GenerationState = "connected"
	StateGenerating  GenerationState = "generating"
	StateCompleted   GenerationState = "completed"
	StateError       GenerationState = "error"
)

// GenerationProgress tracks one story generation session. It doubles
// as the pipeline's progress observer: the library reports through
// UpdateOutput and the messages stream to the browser over the
// session's websocket.
type GenerationProgress struct {
	mu        sync.RWMutex
	SessionID string
	State     GenerationState
	Output    string // generated story text, shown before images arrive
	Result    []byte // assembled PDF, nil until assembly succeeds
	FileName  string
	Error     error
	WSConn    *websocket.Conn
	Done      chan bool
	StartTime time.Time
	IsActive  bool
}

func (gp *GenerationProgress) Close() {
	gp.Lock()
	defer gp.Unlock()
	if gp.WSConn != nil {
		gp.WSConn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		gp.WSConn.Close()
		gp.WSConn = nil
	}
}

// SendUpdate pushes a progress message to the session history and, if
// a websocket is attached, to the browser.
func (p *GenerationProgress) SendUpdate(message string) error {
	p.Lock()
	defer p.Unlock()

	msg := WSMessage{
		Type:      "update",
		Status:    string(p.State),
		Message:   message,
		Output:    p.Output,
		Timestamp: time.Now(),
	}

	// Always emit the message to history first
	if messageEmitter != nil {
		if err := messageEmitter(p.SessionID, msg); err != nil {
			log.Printf("[Session %s] Failed to emit message to history: %v", p.SessionID, err)
		}
	}

	if p.WSConn != nil {
		if err := p.WSConn.WriteJSON(msg); err != nil {
			log.Printf("[Session %s] Failed to send WebSocket message: %v", p.SessionID, err)
			return err
		}
	} else {
		log.Printf("[Session %s] Message queued (no WebSocket): %s", p.SessionID, message)
	}

	return nil
}

// UpdateOutput satisfies the pipeline's progress interface; every
// library-level progress line becomes a websocket update.
func (p *GenerationProgress) UpdateOutput(message string) {
	p.SendUpdate(message)
}

func (p *GenerationProgress) UpdateState(state GenerationState) {
	p.Lock()
	oldState := p.State
	p.State = state
	log.Printf("[Session %s] State transition: %s -> %s", p.SessionID, oldState, state)
	p.Unlock()

	message := ""
	switch state {
	case StateGenerating:
		message = "📖 Generating your storybook..."
	case StateCompleted:
		message = "✨ Storybook generation completed!"
	case StateError:
		message = "❌ Error generating storybook"
	}
	if message != "" {
		p.SendUpdate(message)
	}
}

// SetStoryText records the generated story so the browser can show it
// while the illustrations are still being fetched.
func (p *GenerationProgress) SetStoryText(text string) {
	p.Lock()
	p.Output = text
	p.Unlock()
	p.SendUpdate("Story text ready")
}

// SetResult stores the assembled document for download.
func (p *GenerationProgress) SetResult(doc []byte, fileName string) {
	p.Lock()
	p.Result = doc
	p.FileName = fileName
	p.Unlock()
}

// Document returns the assembled PDF bytes and download name, or
// false if assembly has not succeeded for this session.
func (p *GenerationProgress) Document() ([]byte, string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.Result == nil {
		return nil, "", false
	}
	return p.Result, p.FileName, true
}

func (p *GenerationProgress) SetActive(active bool) {
	p.Lock()
	p.IsActive = active
	p.Unlock()
}

func (gp *GenerationProgress) Lock() {
	gp.mu.Lock()
}

func (gp *GenerationProgress) Unlock() {
	gp.mu.Unlock()
}

func (gp *GenerationProgress) GetState() GenerationState {
	gp.mu.RLock()
	defer gp.mu.RUnlock()
	return gp.State
}

func (gp *GenerationProgress) IsStillActive() bool {
	gp.mu.RLock()
	defer gp.mu.RUnlock()
	return gp.IsActive
}

type WSMessage struct {
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Output    string    `json:"output"`
	Timestamp time.Time `json:"timestamp"`
}

func NewWSMessage(msgType, status, message, output string) WSMessage {
	return WSMessage{
		Type:      msgType,
		Status:    status,
		Message:   message,
		Output:    output,
		Timestamp: time.Now(),
	}
}

var messageEmitter func(sessionID string, msg WSMessage) error

// SetMessageEmitter routes every progress message into the session
// history so reconnecting clients can replay what they missed.
func SetMessageEmitter(emitter func(sessionID string, msg WSMessage) error) {
	messageEmitter = emitter
}
