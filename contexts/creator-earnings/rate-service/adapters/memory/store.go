package memory

import (
	"context"
	"sync"
	"time"

	"claimdesk/contexts/creator-earnings/rate-service/domain/entities"
	domainerrors "claimdesk/contexts/creator-earnings/rate-service/domain/errors"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	history []entities.RateConfiguration
	active  *entities.RateConfiguration
}

func NewStore(active *entities.RateConfiguration) *Store {
	store := &Store{}
	if active != nil {
		rate := *active
		rate.Active = true
		store.active = &rate
		store.history = append(store.history, rate)
	}
	return store
}

func (s *Store) ReplaceActiveRate(_ context.Context, rate entities.RateConfiguration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		s.active.Active = false
	}
	rate.Active = true
	s.active = &rate
	s.history = append(s.history, rate)
	return nil
}

func (s *Store) GetActiveRate(_ context.Context) (entities.RateConfiguration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.active == nil {
		return entities.RateConfiguration{}, domainerrors.ErrNoActiveRate
	}
	return *s.active, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
