package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/tdex-network/luckyspind/internal/core/domain"
)

type signingDirectiveInmemoryStore struct {
	directives []domain.SigningDirective
	locker     *sync.RWMutex
}

type signingDirectiveRepositoryImpl struct {
	store *signingDirectiveInmemoryStore
}

// NewSigningDirectiveRepositoryImpl returns a new empty in-memory repository
// of signing directives.
func NewSigningDirectiveRepositoryImpl() domain.SigningDirectiveRepository {
	return &signingDirectiveRepositoryImpl{&signingDirectiveInmemoryStore{
		directives: make([]domain.SigningDirective, 0),
		locker:     &sync.RWMutex{},
	}}
}

func (r *signingDirectiveRepositoryImpl) AddSigningDirective(
	_ context.Context, directive domain.SigningDirective,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	for _, d := range r.store.directives {
		if d.ID == directive.ID {
			return ErrSigningDirectiveAlreadyExists
		}
	}
	r.store.directives = append(r.store.directives, directive)
	return nil
}

func (r *signingDirectiveRepositoryImpl) GetAllSigningDirectives(
	_ context.Context,
) ([]domain.SigningDirective, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	directives := make([]domain.SigningDirective, len(r.store.directives))
	copy(directives, r.store.directives)
	return directives, nil
}

func (r *signingDirectiveRepositoryImpl) GetSigningDirectivesForAccount(
	_ context.Context, account string,
) ([]domain.SigningDirective, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	directives := make([]domain.SigningDirective, 0)
	for _, d := range r.store.directives {
		if d.Account == account {
			directives = append(directives, d)
		}
	}
	return directives, nil
}

func now() int64 {
	return time.Now().Unix()
}
