package pipeline

import "sync"

// RunStore caches completed pipeline runs keyed by the trimmed idea text.
// Implementations are best-effort, last-write-wins caches: two overlapping
// runs of the same not-yet-cached idea both execute and race the Put.
type RunStore interface {
	Get(key string) (*PipelineRun, bool)
	Put(key string, run *PipelineRun)
}

// MemoryStore is the process-lifetime in-memory cache. No eviction, no TTL,
// no size bound; entries live until the process exits.
type MemoryStore struct {
	mu   sync.Mutex
	runs map[string]*PipelineRun
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]*PipelineRun)}
}

func (s *MemoryStore) Get(key string) (*PipelineRun, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[key]
	return run, ok
}

func (s *MemoryStore) Put(key string, run *PipelineRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[key] = run
}

// Len reports the number of cached runs.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.runs)
}
