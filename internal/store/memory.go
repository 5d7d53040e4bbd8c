package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"glowcheck/internal/models"
)

// MemoryStore is the no-database variant. It keeps everything in process
// memory and honors the same contracts as the Postgres store, including
// subscription deduplication by payment intent id.
type MemoryStore struct {
	mu           sync.RWMutex
	usersByEmail map[string]*models.User
	usersByID    map[string]*models.User
	subsByIntent map[string]*models.Subscription
	subsByUser   map[string][]*models.Subscription
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		usersByEmail: map[string]*models.User{},
		usersByID:    map[string]*models.User{},
		subsByIntent: map[string]*models.Subscription{},
		subsByUser:   map[string][]*models.Subscription{},
	}
}

func (s *MemoryStore) Close() {}

func (s *MemoryStore) SaveUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if existing, ok := s.usersByEmail[user.Email]; ok {
		existing.Name = user.Name
		if user.PasswordHash != "" {
			existing.PasswordHash = user.PasswordHash
		}
		existing.UpdatedAt = now
		*user = *existing
		return nil
	}

	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	copied := *user
	s.usersByEmail[user.Email] = &copied
	s.usersByID[user.ID] = &copied
	return nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *MemoryStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *MemoryStore) SaveSubscription(_ context.Context, sub *models.Subscription) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.subsByIntent[sub.StripePaymentIntentID]; ok {
		*sub = *existing
		return false, nil
	}

	sub.ID = uuid.NewString()
	sub.PurchaseDate = time.Now()
	copied := *sub
	s.subsByIntent[sub.StripePaymentIntentID] = &copied
	s.subsByUser[sub.UserID] = append(s.subsByUser[sub.UserID], &copied)
	return true, nil
}

func (s *MemoryStore) LatestSubscription(_ context.Context, userID string) (*models.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subs := s.subsByUser[userID]
	if len(subs) == 0 {
		return nil, ErrNotFound
	}

	latest := subs[0]
	for _, sub := range subs[1:] {
		if sub.PurchaseDate.After(latest.PurchaseDate) {
			latest = sub
		}
	}
	copied := *latest
	return &copied, nil
}
