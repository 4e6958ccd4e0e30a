package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/userhub/internal/domain"
	"github.com/phrazzld/userhub/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockAccountStore is a testify mock of store.AccountStore.
type MockAccountStore struct {
	mock.Mock
}

var _ store.AccountStore = (*MockAccountStore)(nil)

// Create is a mock implementation of store.AccountStore.Create
func (m *MockAccountStore) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// GetByID is a mock implementation of store.AccountStore.GetByID
func (m *MockAccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if account, ok := args.Get(0).(*domain.Account); ok {
		return account, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByEmail is a mock implementation of store.AccountStore.GetByEmail
func (m *MockAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if account, ok := args.Get(0).(*domain.Account); ok {
		return account, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.AccountStore.List
func (m *MockAccountStore) List(ctx context.Context) ([]*domain.Account, error) {
	args := m.Called(ctx)
	if accounts, ok := args.Get(0).([]*domain.Account); ok {
		return accounts, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.AccountStore.Update
func (m *MockAccountStore) Update(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// Delete is a mock implementation of store.AccountStore.Delete
func (m *MockAccountStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the mock itself so expectations cover transactional calls.
// No expectation is needed for WithTx.
func (m *MockAccountStore) WithTx(_ *sql.Tx) store.AccountStore {
	return m
}
