// ABOUTME: Session struct holding a diagram's source, parsed model, and validation result.
// ABOUTME: Mutations re-parse and re-validate under lock so readers always see a consistent pair.
package wizard

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/erdsmith/erdsmith/erd"
	"github.com/erdsmith/erdsmith/erd/validator"
)

type Session struct {
	mu         sync.RWMutex
	ID         string
	Source     string
	Model      *erd.Model
	Result     *erd.Result
	CreatedAt  time.Time
	LastAccess time.Time
}

// RLock acquires a read lock for safe concurrent reads of session data.
func (sess *Session) RLock() {
	sess.mu.RLock()
}

// RUnlock releases a read lock.
func (sess *Session) RUnlock() {
	sess.mu.RUnlock()
}

// Update replaces the diagram source, then re-parses and re-validates.
func (sess *Session) Update(source string) error {
	if strings.TrimSpace(source) == "" {
		return fmt.Errorf("diagram source is required")
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	model := erd.Parse(source)
	sess.Source = source
	sess.Model = model
	sess.Result = validator.Run(model)
	return nil
}

// Revalidate re-runs validation against the current model under lock.
func (sess *Session) Revalidate() {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.Result = validator.Run(sess.Model)
}

// validateSource parses and validates source without creating a session.
func validateSource(source string) *erd.Result {
	return validator.Run(erd.Parse(source))
}
