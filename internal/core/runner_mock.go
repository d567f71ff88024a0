package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MockRunner implements Runner for tests. Commands are matched by their
// joined command line: exact match first, then the longest registered prefix.
type MockRunner struct {
	mu           sync.Mutex
	Expectations map[string]MockResponse
	NotOnPath    map[string]bool
	Calls        []string
	Inputs       map[string]string
}

type MockResponse struct {
	Output string
	Error  error
}

// MockExitError is a command failure with an exit code.
type MockExitError int

func (e MockExitError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }
func (e MockExitError) ExitCode() int { return int(e) }

func NewMockRunner() *MockRunner {
	return &MockRunner{
		Expectations: make(map[string]MockResponse),
		NotOnPath:    make(map[string]bool),
		Inputs:       make(map[string]string),
	}
}

// OnCommand registers the response for a command line or command-line prefix.
func (m *MockRunner) OnCommand(cmdline string, output string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Expectations[cmdline] = MockResponse{Output: output, Error: err}
}

func (m *MockRunner) CombinedOutput(name string, args ...string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmdline := strings.Join(append([]string{name}, args...), " ")
	m.Calls = append(m.Calls, cmdline)

	if resp, ok := m.Expectations[cmdline]; ok {
		return resp.Output, resp.Error
	}

	keys := make([]string, 0, len(m.Expectations))
	for k := range m.Expectations {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	for _, k := range keys {
		if strings.HasPrefix(cmdline, k) {
			resp := m.Expectations[k]
			return resp.Output, resp.Error
		}
	}

	return "", fmt.Errorf("unexpected command: %s", cmdline)
}

func (m *MockRunner) RunWithInput(input string, name string, args ...string) (string, error) {
	cmdline := strings.Join(append([]string{name}, args...), " ")
	m.mu.Lock()
	m.Inputs[cmdline] = input
	m.mu.Unlock()
	return m.CombinedOutput(name, args...)
}

func (m *MockRunner) LookPath(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.NotOnPath[name]
}

// Called reports whether any recorded command line starts with prefix.
func (m *MockRunner) Called(prefix string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, call := range m.Calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}
