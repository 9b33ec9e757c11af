package form

import "sync"

// MemorySurface keeps element texts in memory. It stands in for a page when
// the form is driven from the command line or from tests.
type MemorySurface struct {
	mu    sync.RWMutex
	texts map[string]string
}

// NewMemorySurface creates an empty surface.
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{texts: make(map[string]string)}
}

// SetText replaces the text of an element.
func (s *MemorySurface) SetText(elementID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[elementID] = text
}

// Text returns the text of an element and whether it was ever set.
func (s *MemorySurface) Text(elementID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.texts[elementID]
	return text, ok
}
