package state

import "time"

// RunRecord summarises one finished run.
type RunRecord struct {
	ID        string    `json:"id"`
	Command   string    `json:"command"`
	Profile   string    `json:"profile"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"` // success, failed
	Changed   int       `json:"changed"`
	Failed    int       `json:"failed"`
}

// State is the content of the state file.
type State struct {
	Version string            `json:"version"`
	LastRun time.Time         `json:"last_run"`
	Values  map[string]string `json:"values"`
	History []RunRecord       `json:"history,omitempty"`
}

func NewState() *State {
	return &State{
		Version: "1",
		Values:  make(map[string]string),
	}
}
