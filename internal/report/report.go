package report

import (
	"fmt"
	"math/rand"
	"time"
)

// Report is one structured error record, correlated by ID and session.
type Report struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	SessionID string         `json:"sessionId"`
	Level     string         `json:"level"`
	Component string         `json:"component"`
	Action    string         `json:"action,omitempty"`
	Message   string         `json:"message"`
	Status    int            `json:"status,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

const (
	LevelError   = "error"
	LevelWarning = "warning"
	LevelInfo    = "info"
)

func newID(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), randomSuffix())
}

func randomSuffix() string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, 9)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}
