package reportstore

import (
	"context"
	"sync"

	model "github.com/teampulse/pulse/internal/domain/model"
	"github.com/teampulse/pulse/pkg/logger"
	"github.com/teampulse/pulse/pkg/metrics"
)

// Memory keeps decoded reports in memory. Tests and fixtures use it in
// place of the SQLite store.
type Memory struct {
	mu      sync.RWMutex
	reports []model.Report
	logger  logger.Logger
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		logger: logger.Get().Named("reportstore"),
	}
}

// Ingest decodes and stores raw report documents, skipping any that
// cannot be decoded. It returns how many documents were stored.
func (m *Memory) Ingest(docs ...[]byte) int {
	stored := 0
	for _, doc := range docs {
		r, err := DecodeDocument(doc)
		if err != nil {
			metrics.RecordStoreRowSkipped()
			m.logger.Warn(context.Background(), "skipping undecodable report document", logger.Error(err))
			continue
		}
		m.Add(r)
		stored++
	}
	return stored
}

// Add stores already-decoded reports.
func (m *Memory) Add(reports ...model.Report) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, reports...)
}

// Fetch returns the reports matching filter, newest first.
func (m *Memory) Fetch(ctx context.Context, filter Filter) ([]model.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Report, 0, len(m.reports))
	for _, r := range m.reports {
		if filter.matches(r) {
			out = append(out, r)
		}
	}
	sortNewestFirst(out)
	return out, nil
}
