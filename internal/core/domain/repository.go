package domain

import "context"

// ProgramAccountRepository is the abstraction for any kind of database
// intended to persist program accounts.
type ProgramAccountRepository interface {
	// AddAccount stores a new account, failing with ErrAccountAlreadyExists if
	// the key is already in use.
	AddAccount(ctx context.Context, account ProgramAccount) error
	// GetAccount returns the account with the given hex key, or
	// ErrAccountNotFound.
	GetAccount(ctx context.Context, key string) (*ProgramAccount, error)
	// UpdateAccountData overwrites the data buffer of an existing account.
	UpdateAccountData(ctx context.Context, key string, data []byte) error
}

// SigningDirectiveRepository is the abstraction for any kind of database
// intended to persist signing directives.
type SigningDirectiveRepository interface {
	AddSigningDirective(ctx context.Context, directive SigningDirective) error
	GetAllSigningDirectives(ctx context.Context) ([]SigningDirective, error)
	GetSigningDirectivesForAccount(
		ctx context.Context, account string,
	) ([]SigningDirective, error)
}
