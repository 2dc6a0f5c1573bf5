package dbbadger

import (
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	"github.com/tdex-network/luckyspind/internal/core/domain"
	"github.com/tdex-network/luckyspind/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

type repoManager struct {
	accountStore   *badgerhold.Store
	directiveStore *badgerhold.Store

	accountRepository   domain.ProgramAccountRepository
	directiveRepository domain.SigningDirectiveRepository
}

// NewRepoManager opens (or creates if not exists) the badger stores on disk.
// It expects a base data dir and an optional logger. If the base dir is
// empty, the stores are kept in memory.
func NewRepoManager(
	baseDbDir string, logger badger.Logger,
) (ports.RepoManager, error) {
	var accountsDir, directivesDir string
	if len(baseDbDir) > 0 {
		accountsDir = filepath.Join(baseDbDir, "accounts")
		directivesDir = filepath.Join(baseDbDir, "directives")
	}

	accountStore, err := createDb(accountsDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening accounts db: %w", err)
	}

	directiveStore, err := createDb(directivesDir, logger)
	if err != nil {
		accountStore.Close()
		return nil, fmt.Errorf("opening directives db: %w", err)
	}

	return &repoManager{
		accountStore:        accountStore,
		directiveStore:      directiveStore,
		accountRepository:   NewProgramAccountRepositoryImpl(accountStore),
		directiveRepository: NewSigningDirectiveRepositoryImpl(directiveStore),
	}, nil
}

func (r *repoManager) ProgramAccountRepository() domain.ProgramAccountRepository {
	return r.accountRepository
}

func (r *repoManager) SigningDirectiveRepository() domain.SigningDirectiveRepository {
	return r.directiveRepository
}

func (r *repoManager) Close() {
	r.accountStore.Close()
	r.directiveStore.Close()
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger
	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
