package ports

import "github.com/tdex-network/luckyspind/internal/core/domain"

// RepoManager interface defines the methods for the accounts and signing
// directives repositories.
type RepoManager interface {
	ProgramAccountRepository() domain.ProgramAccountRepository
	SigningDirectiveRepository() domain.SigningDirectiveRepository

	Close()
}
