package store

import (
	"context"
	"sync"

	"github.com/inovacc/cardvault/internal/model"
)

// Memory is a map-backed Store. Cards live only as long as the process.
type Memory struct {
	mu    sync.RWMutex
	cards map[string]model.CharacterCard
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{cards: make(map[string]model.CharacterCard)}
}

func (m *Memory) Ping() error {
	return nil
}

func (m *Memory) List(ctx context.Context) ([]model.CharacterCard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.CharacterCard, 0, len(m.cards))
	for _, card := range m.cards {
		out = append(out, cloneCard(card))
	}

	return out, nil
}

func (m *Memory) Get(ctx context.Context, id string) (model.CharacterCard, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.CharacterCard{}, false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	card, ok := m.cards[id]
	if !ok {
		return model.CharacterCard{}, false, nil
	}

	return cloneCard(card), true, nil
}

func (m *Memory) Put(ctx context.Context, card model.CharacterCard) error {
	return m.PutAll(ctx, []model.CharacterCard{card})
}

func (m *Memory) PutAll(ctx context.Context, cards []model.CharacterCard) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := validateCards(model.BackendMemory, "put", cards...); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, card := range cards {
		m.cards[card.ID] = cloneCard(card)
	}

	return nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.cards, id)

	return nil
}

func (m *Memory) Close() error {
	return nil
}
