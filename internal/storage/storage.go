// Package storage is the persistence collaborator for the collection
// stores: a JSON file-per-key load/save pair. Saves are best-effort — a
// failed write is logged and counted but never surfaces to the mutation
// that triggered it. Dates round-trip losslessly because time.Time
// marshals to RFC 3339.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jwalitptl/salestrack-api/pkg/logger"
	"github.com/jwalitptl/salestrack-api/pkg/metrics"
)

// Well-known collection keys.
const (
	KeyLeads     = "leads"
	KeyCompanies = "companies"
	KeyCallLogs  = "call_logs"
)

type Manager struct {
	dir     string
	log     *logger.Logger
	metrics *metrics.Metrics
}

// New creates the backing directory if needed. The metrics argument may be
// nil (tests).
func New(dir string, log *logger.Logger, m *metrics.Metrics) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &Manager{dir: dir, log: log, metrics: m}, nil
}

func (m *Manager) path(key string) string {
	return filepath.Join(m.dir, key+".json")
}

// Load reads the value stored under key into v. A missing key is not an
// error: v is left untouched so the caller's default survives.
func (m *Manager) Load(key string, v any) error {
	data, err := os.ReadFile(m.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// Save writes v under key. Best-effort: failures are logged, never
// returned, so an in-memory mutation is not rolled back because storage
// misbehaved.
func (m *Manager) Save(key string, v any) {
	start := time.Now()
	if err := m.save(key, v); err != nil {
		m.log.Error(err, "failed to persist collection", "key", key)
		if m.metrics != nil {
			m.metrics.PersistFailures.Inc()
		}
		return
	}
	if m.metrics != nil {
		m.metrics.PersistLatency.Observe(time.Since(start).Seconds())
	}
}

func (m *Manager) save(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	// Write to a temp file and rename so a crash mid-write never leaves a
	// truncated collection behind.
	tmp, err := os.CreateTemp(m.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), m.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

// Remove deletes the value stored under key, if any.
func (m *Manager) Remove(key string) {
	if err := os.Remove(m.path(key)); err != nil && !os.IsNotExist(err) {
		m.log.Error(err, "failed to remove collection", "key", key)
	}
}
