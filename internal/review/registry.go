package review

// Registry owns the live sessions, keyed by the document they overlay.
// Sessions for different documents are fully independent; the engine
// itself keeps no package-level state.
type Registry struct {
	sessions map[string]*Session
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Start creates a session for subjectID. An existing session for the
// same document is cancelled and superseded.
func (r *Registry) Start(subjectID, originalContent, proposedContent, summary string) *Session {
	if prev, ok := r.sessions[subjectID]; ok {
		prev.Cancel()
	}
	s := NewSession(subjectID, originalContent, proposedContent, summary)
	r.sessions[subjectID] = s
	return s
}

// Get returns the live session for subjectID, if one exists.
func (r *Registry) Get(subjectID string) (*Session, bool) {
	s, ok := r.sessions[subjectID]
	return s, ok
}

// Close cancels and removes the session for subjectID.
func (r *Registry) Close(subjectID string) {
	if s, ok := r.sessions[subjectID]; ok {
		s.Cancel()
		delete(r.sessions, subjectID)
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return len(r.sessions)
}
