package store

import (
	"context"
	"strings"
	"sync"
)

type mapping struct {
	pattern  string // lower-cased
	category string
	seq      int
}

// Memory keeps category rules in process.
type Memory struct {
	mu       sync.RWMutex
	mappings []mapping
	next     int
}

func NewMemory() *Memory {
	return &Memory{}
}

// FindMatch picks the longest pattern contained in description, case
// insensitively. Among equal lengths the most recent rule wins. An empty
// result means no rule matched.
func (s *Memory) FindMatch(_ context.Context, description string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	desc := strings.ToLower(description)

	var best *mapping

	for i := range s.mappings {
		m := &s.mappings[i]
		if !strings.Contains(desc, m.pattern) {
			continue
		}

		if best == nil || len(m.pattern) > len(best.pattern) ||
			(len(m.pattern) == len(best.pattern) && m.seq > best.seq) {
			best = m
		}
	}

	if best == nil {
		return "", nil
	}

	return best.category, nil
}

func (s *Memory) CreateMapping(_ context.Context, pattern, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	s.mappings = append(s.mappings, mapping{
		pattern:  strings.ToLower(pattern),
		category: category,
		seq:      s.next,
	})

	return nil
}
