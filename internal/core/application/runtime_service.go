package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/luckyspind/internal/core/domain"
	"github.com/tdex-network/luckyspind/internal/core/ports"
	"github.com/tdex-network/luckyspind/pkg/stats"
)

// DefaultAccountCapacity is the size in bytes of the data buffer allocated
// for every new account.
const DefaultAccountCapacity = 10240

// RuntimeService hosts the program locally: it keeps the program accounts,
// lends them to the processor and persists their data once an instruction
// succeeds.
type RuntimeService interface {
	CreateAccount(ctx context.Context, pubkey string) error
	Execute(ctx context.Context, pubkey string, instruction []byte) error
	GetState(ctx context.Context, pubkey string) (*domain.LuckySpinState, error)
	ListSigningDirectives(
		ctx context.Context, pubkey string,
	) ([]domain.SigningDirective, error)
}

type runtimeService struct {
	repoManager ports.RepoManager
	processor   *Processor
	programID   domain.Pubkey
	capacity    int

	lock     sync.Mutex
	accounts map[string]*HostAccount
}

func NewRuntimeService(
	repoManager ports.RepoManager,
	processor *Processor,
	programID domain.Pubkey,
	capacity int,
) (RuntimeService, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if processor == nil {
		return nil, fmt.Errorf("missing processor")
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("account capacity must be greater than zero")
	}

	return &runtimeService{
		repoManager: repoManager,
		processor:   processor,
		programID:   programID,
		capacity:    capacity,
		accounts:    make(map[string]*HostAccount),
	}, nil
}

func (s *runtimeService) CreateAccount(ctx context.Context, pubkey string) error {
	key, err := parseAccountKey(pubkey)
	if err != nil {
		return err
	}

	account := domain.NewProgramAccount(key, s.capacity)
	if err := s.repoManager.ProgramAccountRepository().AddAccount(
		ctx, *account,
	); err != nil {
		return err
	}

	log.Infof("created account %s with capacity %d", account.Key, s.capacity)
	return nil
}

func (s *runtimeService) Execute(
	ctx context.Context, pubkey string, instruction []byte,
) error {
	start := time.Now()
	opcode := "unknown"
	if op, err := domain.ParseOpcode(instruction); err == nil {
		opcode = op.String()
	}

	err := s.execute(ctx, pubkey, instruction)
	stats.ObserveInstruction(opcode, errorLabel(err), time.Since(start))
	return err
}

func (s *runtimeService) GetState(
	ctx context.Context, pubkey string,
) (*domain.LuckySpinState, error) {
	account, err := s.getAccount(ctx, pubkey)
	if err != nil {
		return nil, err
	}

	state, _, err := domain.DeserializeState(account.Snapshot())
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *runtimeService) ListSigningDirectives(
	ctx context.Context, pubkey string,
) ([]domain.SigningDirective, error) {
	repo := s.repoManager.SigningDirectiveRepository()
	if pubkey == "" {
		return repo.GetAllSigningDirectives(ctx)
	}
	if _, err := domain.NewPubkeyFromString(pubkey); err != nil {
		return nil, err
	}
	return repo.GetSigningDirectivesForAccount(ctx, pubkey)
}

func (s *runtimeService) execute(
	ctx context.Context, pubkey string, instruction []byte,
) error {
	account, err := s.getAccount(ctx, pubkey)
	if err != nil {
		return err
	}

	// The live buffer stays borrowed for the whole execution, while the
	// instruction runs against a staged copy that replaces it only once
	// persisted.
	data, release, err := account.TryBorrowMutData()
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrAccountBorrowFailed, err)
	}
	defer release()

	staged := NewHostAccount(account.Key(), data)
	if err := s.processor.ProcessInstruction(
		s.programID, []ports.Account{staged}, instruction,
	); err != nil {
		log.WithError(err).Debugf("instruction failed for account %s", pubkey)
		return err
	}

	updated := staged.Snapshot()
	if err := s.repoManager.ProgramAccountRepository().UpdateAccountData(
		ctx, pubkey, updated,
	); err != nil {
		log.WithError(err).Warnf("failed to persist account %s", pubkey)
		return err
	}

	copy(data, updated)
	return nil
}

// getAccount returns the live account for the given key, loading it from the
// repository the first time.
func (s *runtimeService) getAccount(
	ctx context.Context, pubkey string,
) (*HostAccount, error) {
	key, err := domain.NewPubkeyFromString(pubkey)
	if err != nil {
		return nil, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if account, ok := s.accounts[pubkey]; ok {
		return account, nil
	}

	stored, err := s.repoManager.ProgramAccountRepository().GetAccount(
		ctx, pubkey,
	)
	if err != nil {
		return nil, err
	}

	account := NewHostAccount(key, stored.Data)
	s.accounts[pubkey] = account
	return account, nil
}

func parseAccountKey(pubkey string) (domain.Pubkey, error) {
	key, err := domain.NewPubkeyFromString(pubkey)
	if err != nil {
		return key, err
	}
	if _, err := schnorr.ParsePubKey(key[:]); err != nil {
		return key, fmt.Errorf("%w: %s", domain.ErrInvalidPubkey, err)
	}
	return key, nil
}

// errorLabel maps err to a short label suitable for metrics.
func errorLabel(err error) string {
	switch {
	case err == nil:
		return stats.ResultOk
	case errors.Is(err, domain.ErrInvalidInstruction):
		return "invalid_instruction"
	case errors.Is(err, domain.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, domain.ErrAccountBorrowFailed):
		return "borrow_failed"
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, domain.ErrMalformedTransaction):
		return "malformed_transaction"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	default:
		return "internal"
	}
}
