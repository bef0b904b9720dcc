package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/clarawendel/artisan-market/internal/market"
	"github.com/oklog/ulid/v2"
)

// MemStore is an in-memory CredentialStore/ResultLog/Catalog used in
// tests so the orchestrator can run without a real storage backend.
// Drafts go through a JSON round-trip, same as the SQL store.
type MemStore struct {
	mu          sync.Mutex
	staged      map[string][]byte
	credentials map[string]market.PlatformCredential
	outcomes    map[string][]Outcome
	products    map[string]market.ProductDraft
}

func NewMemStore() *MemStore {
	return &MemStore{
		staged:      make(map[string][]byte),
		credentials: make(map[string]market.PlatformCredential),
		outcomes:    make(map[string][]Outcome),
		products:    make(map[string]market.ProductDraft),
	}
}

func (m *MemStore) Stage(_ context.Context, sessionID string, draft market.ProductDraft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode staged product: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staged[sessionID] = payload
	return nil
}

func (m *MemStore) LoadStaged(_ context.Context, sessionID string) (*market.ProductDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.staged[sessionID]
	if !ok {
		return nil, nil
	}
	var draft market.ProductDraft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("decode staged product: %w", err)
	}
	return &draft, nil
}

func (m *MemStore) ClearStaged(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.staged, sessionID)
	return nil
}

func (m *MemStore) SaveCredential(_ context.Context, sessionID string, cred market.PlatformCredential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credentials[sessionID+"/"+string(cred.Platform)] = cred
	return nil
}

func (m *MemStore) LoadCredential(_ context.Context, sessionID string, platform market.Platform) (*market.PlatformCredential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cred, ok := m.credentials[sessionID+"/"+string(platform)]
	if !ok {
		return nil, nil
	}
	return &cred, nil
}

func (m *MemStore) RecordOutcome(_ context.Context, sessionID string, outcome Outcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[sessionID] = append(m.outcomes[sessionID], outcome)
	return nil
}

func (m *MemStore) ListOutcomes(_ context.Context, sessionID string) ([]Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	latest := make(map[market.Platform]Outcome)
	var order []market.Platform
	for _, outcome := range m.outcomes[sessionID] {
		if _, seen := latest[outcome.Platform]; !seen {
			order = append(order, outcome.Platform)
		}
		latest[outcome.Platform] = outcome
	}

	outcomes := make([]Outcome, 0, len(order))
	for _, platform := range order {
		outcomes = append(outcomes, latest[platform])
	}
	return outcomes, nil
}

func (m *MemStore) ClearOutcomes(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.outcomes, sessionID)
	return nil
}

func (m *MemStore) SaveProduct(_ context.Context, draft market.ProductDraft) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := ulid.Make().String()
	m.products[id] = draft
	return id, nil
}

// Products returns the saved catalog, for test assertions.
func (m *MemStore) Products() map[string]market.ProductDraft {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]market.ProductDraft, len(m.products))
	for id, draft := range m.products {
		out[id] = draft
	}
	return out
}
