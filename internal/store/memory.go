package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps the calculation history in process. It is used when no
// database is configured.
type MemoryStore struct {
	mu           sync.RWMutex
	calculations map[uuid.UUID]*Calculation
	now          func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		calculations: make(map[uuid.UUID]*Calculation),
		now:          time.Now,
	}
}

func (s *MemoryStore) CreateCalculation(_ context.Context, c *Calculation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uuid.New()
	c.CreatedAt = s.now().UTC()
	s.calculations[c.ID] = clone(c)
	return nil
}

func (s *MemoryStore) GetCalculation(_ context.Context, id uuid.UUID) (*Calculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.calculations[id]
	if !ok {
		return nil, nil
	}
	return clone(c), nil
}

func (s *MemoryStore) ListCalculations(_ context.Context, filter CalculationFilter) ([]*Calculation, error) {
	s.mu.RLock()
	out := make([]*Calculation, 0, len(s.calculations))
	for _, c := range s.calculations {
		if filter.Source != "" && c.Source != filter.Source {
			continue
		}
		out = append(out, clone(c))
	}
	s.mu.RUnlock()

	// newest first, ID breaks ties so ordering is stable
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []*Calculation{}, nil
		}
		out = out[filter.Offset:]
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) GetStats(_ context.Context) (*CalculationStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &CalculationStats{TotalCalculations: len(s.calculations)}
	if len(s.calculations) == 0 {
		return stats, nil
	}

	var sum float64
	var last time.Time
	for _, c := range s.calculations {
		sum += c.Result
		if c.CreatedAt.After(last) {
			last = c.CreatedAt
		}
	}
	stats.AvgResult = sum / float64(len(s.calculations))
	stats.LastCalculatedAt = &last
	return stats, nil
}

func (s *MemoryStore) Close() error { return nil }

// clone copies c including its slices so stored history never aliases
// caller memory.
func clone(c *Calculation) *Calculation {
	cp := *c
	if c.Numbers != nil {
		cp.Numbers = append([]float64{}, c.Numbers...)
	}
	if c.Weights != nil {
		cp.Weights = append([]float64{}, c.Weights...)
	}
	return &cp
}
