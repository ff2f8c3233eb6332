package session

import (
	"context"
	"encoding/json"
	"sync"
)

// Store persists session records keyed by session id.
//
// Load must tolerate both absence and corruption: a record that cannot be
// decoded is discarded and reported as absent, never as an error. The
// worst outcome of a broken record is an unauthenticated session.
type Store interface {
	Save(ctx context.Context, sid string, rec *Record) error
	Load(ctx context.Context, sid string) (*Record, error)
	Delete(ctx context.Context, sid string) error
}

// FlowStore persists auth-flow snapshots with the same tolerance rules.
type FlowStore interface {
	SaveFlow(ctx context.Context, sid string, snap *FlowSnapshot) error
	LoadFlow(ctx context.Context, sid string) (*FlowSnapshot, error)
	DeleteFlow(ctx context.Context, sid string) error
}

// MemoryStore keeps records in process memory. It backs tests and
// Redis-less development. Values are stored serialized so the codec path
// matches the Redis store exactly.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
	flows   map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string][]byte),
		flows:   make(map[string][]byte),
	}
}

func (s *MemoryStore) Save(ctx context.Context, sid string, rec *Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.records[sid] = b
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, sid string) (*Record, error) {
	s.mu.RLock()
	b, ok := s.records[sid]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		// corrupted record: drop it and start unauthenticated
		s.mu.Lock()
		delete(s.records, sid)
		s.mu.Unlock()
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryStore) Delete(ctx context.Context, sid string) error {
	s.mu.Lock()
	delete(s.records, sid)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) SaveFlow(ctx context.Context, sid string, snap *FlowSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.flows[sid] = b
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) LoadFlow(ctx context.Context, sid string) (*FlowSnapshot, error) {
	s.mu.RLock()
	b, ok := s.flows[sid]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var snap FlowSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		s.mu.Lock()
		delete(s.flows, sid)
		s.mu.Unlock()
		return nil, nil
	}
	return &snap, nil
}

func (s *MemoryStore) DeleteFlow(ctx context.Context, sid string) error {
	s.mu.Lock()
	delete(s.flows, sid)
	s.mu.Unlock()
	return nil
}

// Corrupt overwrites a stored record with garbage. Test hook.
func (s *MemoryStore) Corrupt(sid string) {
	s.mu.Lock()
	s.records[sid] = []byte("{not json")
	s.mu.Unlock()
}

var (
	_ Store     = (*MemoryStore)(nil)
	_ FlowStore = (*MemoryStore)(nil)
)
