package dbbadger

import (
	"context"
	"time"

	"github.com/tdex-network/luckyspind/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type programAccountRepositoryImpl struct {
	store *badgerhold.Store
}

// NewProgramAccountRepositoryImpl initializes a badger implementation of
// domain.ProgramAccountRepository.
func NewProgramAccountRepositoryImpl(
	store *badgerhold.Store,
) domain.ProgramAccountRepository {
	return &programAccountRepositoryImpl{store}
}

func (r *programAccountRepositoryImpl) AddAccount(
	_ context.Context, account domain.ProgramAccount,
) error {
	if err := r.store.Insert(account.Key, account); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrAccountAlreadyExists
		}
		return err
	}
	return nil
}

func (r *programAccountRepositoryImpl) GetAccount(
	_ context.Context, key string,
) (*domain.ProgramAccount, error) {
	var account domain.ProgramAccount
	if err := r.store.Get(key, &account); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *programAccountRepositoryImpl) UpdateAccountData(
	ctx context.Context, key string, data []byte,
) error {
	account, err := r.GetAccount(ctx, key)
	if err != nil {
		return err
	}

	account.Data = data
	account.UpdatedAt = time.Now().Unix()
	return r.store.Update(key, *account)
}
