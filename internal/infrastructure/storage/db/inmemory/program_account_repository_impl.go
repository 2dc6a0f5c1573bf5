package inmemory

import (
	"context"
	"sync"

	"github.com/tdex-network/luckyspind/internal/core/domain"
)

type programAccountInmemoryStore struct {
	accounts map[string]domain.ProgramAccount
	locker   *sync.RWMutex
}

type programAccountRepositoryImpl struct {
	store *programAccountInmemoryStore
}

// NewProgramAccountRepositoryImpl returns a new empty in-memory repository
// of program accounts.
func NewProgramAccountRepositoryImpl() domain.ProgramAccountRepository {
	return &programAccountRepositoryImpl{&programAccountInmemoryStore{
		accounts: make(map[string]domain.ProgramAccount),
		locker:   &sync.RWMutex{},
	}}
}

func (r *programAccountRepositoryImpl) AddAccount(
	_ context.Context, account domain.ProgramAccount,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.accounts[account.Key]; ok {
		return domain.ErrAccountAlreadyExists
	}
	r.store.accounts[account.Key] = copyAccount(account)
	return nil
}

func (r *programAccountRepositoryImpl) GetAccount(
	_ context.Context, key string,
) (*domain.ProgramAccount, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	account, ok := r.store.accounts[key]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	account = copyAccount(account)
	return &account, nil
}

func (r *programAccountRepositoryImpl) UpdateAccountData(
	_ context.Context, key string, data []byte,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	account, ok := r.store.accounts[key]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.Data = data
	account.UpdatedAt = now()
	r.store.accounts[key] = copyAccount(account)
	return nil
}

// copyAccount detaches the data buffer of the stored account from the one
// given or returned to callers.
func copyAccount(account domain.ProgramAccount) domain.ProgramAccount {
	data := make([]byte, len(account.Data))
	copy(data, account.Data)
	account.Data = data
	return account
}
