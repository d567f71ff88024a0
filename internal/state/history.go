package state

// maxHistory bounds the run log kept in the state file.
const maxHistory = 50

// AddRun appends a run record to history and saves state.
func (s *FileStore) AddRun(r RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current.History = append(s.current.History, r)
	if over := len(s.current.History) - maxHistory; over > 0 {
		s.current.History = s.current.History[over:]
	}
	return s.save()
}

// Runs returns a copy of history, oldest first.
func (s *FileStore) Runs() []RunRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]RunRecord, len(s.current.History))
	copy(history, s.current.History)
	return history
}
