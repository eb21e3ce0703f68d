// Package watchlist keeps the set of symbols analyzed by the daily job.
package watchlist

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
	"time"
)

// Manager handles watchlist edits with concurrency safety.
type Manager struct {
	mu       sync.Mutex
	state    *State
	filePath string
}

// NewManager creates a Manager, loading state from disk. A fresh state is
// seeded with the given symbols.
func NewManager(filePath string, seed []string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	if len(state.Symbols) == 0 {
		for _, s := range seed {
			if s = Normalize(s); s != "" && !slices.Contains(state.Symbols, s) {
				state.Symbols = append(state.Symbols, s)
			}
		}
	}
	if state.LastRun == nil {
		state.LastRun = make(map[string]time.Time)
	}

	m := &Manager{state: state, filePath: filePath}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// Normalize upper-cases and trims a ticker such as " 600519.sh ".
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Symbols returns a copy of the watched symbols in insertion order.
func (m *Manager) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.state.Symbols)
}

// Add watches symbol. It reports false when it was already present.
func (m *Manager) Add(symbol string) (bool, error) {
	symbol = Normalize(symbol)
	if symbol == "" {
		return false, fmt.Errorf("empty symbol")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.Contains(m.state.Symbols, symbol) {
		return false, nil
	}
	m.state.Symbols = append(m.state.Symbols, symbol)
	return true, m.save()
}

// Remove stops watching symbol. It reports false when it was not present.
func (m *Manager) Remove(symbol string) (bool, error) {
	symbol = Normalize(symbol)
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.Index(m.state.Symbols, symbol)
	if i < 0 {
		return false, nil
	}
	m.state.Symbols = slices.Delete(m.state.Symbols, i, i+1)
	delete(m.state.LastRun, symbol)
	return true, m.save()
}

// MarkRun records when symbol was last analyzed.
func (m *Manager) MarkRun(symbol string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.LastRun[Normalize(symbol)] = at
	if err := m.save(); err != nil {
		log.Printf("[ERROR] save watchlist: %v", err)
	}
}

// LastRun returns when symbol was last analyzed.
func (m *Manager) LastRun(symbol string) (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.state.LastRun[Normalize(symbol)]
	return t, ok
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}
