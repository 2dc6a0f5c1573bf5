package dbbadger

import (
	"context"
	"sort"

	"github.com/tdex-network/luckyspind/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type signingDirectiveRepositoryImpl struct {
	store *badgerhold.Store
}

// NewSigningDirectiveRepositoryImpl initializes a badger implementation of
// domain.SigningDirectiveRepository.
func NewSigningDirectiveRepositoryImpl(
	store *badgerhold.Store,
) domain.SigningDirectiveRepository {
	return &signingDirectiveRepositoryImpl{store}
}

func (r *signingDirectiveRepositoryImpl) AddSigningDirective(
	_ context.Context, directive domain.SigningDirective,
) error {
	if err := r.store.Insert(directive.ID, directive); err != nil {
		if err == badgerhold.ErrKeyExists {
			return ErrSigningDirectiveAlreadyExists
		}
		return err
	}
	return nil
}

func (r *signingDirectiveRepositoryImpl) GetAllSigningDirectives(
	_ context.Context,
) ([]domain.SigningDirective, error) {
	return r.findDirectives(nil)
}

func (r *signingDirectiveRepositoryImpl) GetSigningDirectivesForAccount(
	_ context.Context, account string,
) ([]domain.SigningDirective, error) {
	return r.findDirectives(badgerhold.Where("Account").Eq(account))
}

func (r *signingDirectiveRepositoryImpl) findDirectives(
	query *badgerhold.Query,
) ([]domain.SigningDirective, error) {
	var directives []domain.SigningDirective
	if err := r.store.Find(&directives, query); err != nil {
		return nil, err
	}

	sort.SliceStable(directives, func(i, j int) bool {
		return directives[i].Timestamp < directives[j].Timestamp
	})
	if directives == nil {
		directives = make([]domain.SigningDirective, 0)
	}
	return directives, nil
}
