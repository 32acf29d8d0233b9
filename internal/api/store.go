package api

import (
	"sync"

	"github.com/google/uuid"
)

// InspectionStore keeps inspection results so a client can fetch them
// again by id. In-memory only; results do not survive a restart.
type InspectionStore struct {
	mu          sync.Mutex
	inspections map[string]InspectResponse
}

func NewInspectionStore() *InspectionStore {
	return &InspectionStore{
		inspections: make(map[string]InspectResponse),
	}
}

func (s *InspectionStore) Save(resp InspectResponse) {
	s.mu.Lock()
	s.inspections[resp.ID] = resp
	s.mu.Unlock()
}

func (s *InspectionStore) Get(id string) (InspectResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, ok := s.inspections[id]
	return resp, ok
}

func (s *InspectionStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inspections[id]; !ok {
		return false
	}
	delete(s.inspections, id)
	return true
}

func newInspectionID() string {
	return "insp_" + uuid.NewString()
}
