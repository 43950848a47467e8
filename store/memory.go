package store

import (
	"context"
	"sync"

	"github.com/mbolis/quick-forms/model"
)

// MemoryResponses is an in-memory ResponseStore, used by tests.
type MemoryResponses struct {
	mu    sync.RWMutex
	forms map[string]map[string]map[string]string // formID -> sessionID -> fieldID -> value
}

func NewMemoryResponses() *MemoryResponses {
	return &MemoryResponses{
		forms: make(map[string]map[string]map[string]string),
	}
}

func (s *MemoryResponses) Upsert(ctx context.Context, formID, sessionID, fieldID, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, ok := s.forms[formID]
	if !ok {
		sessions = make(map[string]map[string]string)
		s.forms[formID] = sessions
	}
	data, ok := sessions[sessionID]
	if !ok {
		data = make(map[string]string)
		sessions[sessionID] = data
	}
	data[fieldID] = value
	return nil
}

func (s *MemoryResponses) PurgeFields(ctx context.Context, formID string, fieldIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, data := range s.forms[formID] {
		for _, fieldID := range fieldIDs {
			delete(data, fieldID)
		}
	}
	return nil
}

func (s *MemoryResponses) DeleteAllForForm(ctx context.Context, formID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.forms, formID)
	return nil
}

func (s *MemoryResponses) ListForForm(ctx context.Context, formID string) ([]model.FormResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	responses := []model.FormResponse{}
	for sessionID, data := range s.forms[formID] {
		copied := make(map[string]string, len(data))
		for k, v := range data {
			copied[k] = v
		}
		responses = append(responses, model.FormResponse{
			FormID:    formID,
			SessionID: sessionID,
			Data:      copied,
		})
	}
	return responses, nil
}
