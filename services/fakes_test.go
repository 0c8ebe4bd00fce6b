package services_test

import (
	"context"
	"sync"
	"time"

	"go.pilab.hu/ssoadmin/domain"
)

// In-memory repository implementations backing the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	r.users[user.Username] = *user
	return nil
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, exists := r.users[username]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; !exists {
		return domain.ErrUserNotFound
	}
	r.users[user.Username] = *user
	return nil
}

type fakeClientRepo struct {
	mu      sync.Mutex
	clients map[string]domain.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]domain.Client)}
}

func (r *fakeClientRepo) CreateClient(_ context.Context, client *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.clients[client.ClientID]; exists {
		return domain.ErrClientExists
	}
	r.clients[client.ClientID] = *client
	return nil
}

func (r *fakeClientRepo) GetClientByClientID(_ context.Context, clientID string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	client, exists := r.clients[clientID]
	if !exists {
		return nil, domain.ErrClientNotFound
	}
	return &client, nil
}

type fakeAuthorizationRepo struct {
	mu      sync.Mutex
	records []domain.Authorization
	err     error
}

func (r *fakeAuthorizationRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	var kept []domain.Authorization
	var deleted int64
	for _, record := range r.records {
		if record.Expired(now) {
			deleted++
			continue
		}
		kept = append(kept, record)
	}
	r.records = kept
	return deleted, nil
}
