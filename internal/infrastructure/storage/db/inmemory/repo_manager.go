package inmemory

import (
	"github.com/tdex-network/luckyspind/internal/core/domain"
	"github.com/tdex-network/luckyspind/internal/core/ports"
)

type repoManager struct {
	accountRepository   domain.ProgramAccountRepository
	directiveRepository domain.SigningDirectiveRepository
}

func NewRepoManager() ports.RepoManager {
	return &repoManager{
		accountRepository:   NewProgramAccountRepositoryImpl(),
		directiveRepository: NewSigningDirectiveRepositoryImpl(),
	}
}

func (r *repoManager) ProgramAccountRepository() domain.ProgramAccountRepository {
	return r.accountRepository
}

func (r *repoManager) SigningDirectiveRepository() domain.SigningDirectiveRepository {
	return r.directiveRepository
}

func (r *repoManager) Close() {}
