package ui

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/opd-ai/storybook/srv/generator"
)

func isValidSession(sessionID string) bool {
	if sessionID == "" {
		return false
	}

	// Validate UUID format
	_, err := uuid.Parse(sessionID)
	return err == nil
}

func writeJSONMessages(w http.ResponseWriter, messages []generator.WSMessage) {
	if err := json.NewEncoder(w).Encode(messages); err != nil {
		log.Printf("Error encoding messages: %v", err)
	}
}
