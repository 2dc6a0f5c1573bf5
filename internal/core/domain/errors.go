package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInstruction is returned when the leading opcode byte of an
	// instruction does not match any known handler.
	ErrInvalidInstruction = errors.New("invalid instruction")
	// ErrInvalidArgument is returned when the instruction payload does not
	// match the expected schema or carries an unknown discriminator.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAccountBorrowFailed is returned when exclusive access to the account
	// data cannot be granted by the host.
	ErrAccountBorrowFailed = errors.New("account borrow failed")
	// ErrCapacityExceeded is returned when the serialized state would not fit
	// the account data buffer.
	ErrCapacityExceeded = errors.New("account data capacity exceeded")
	// ErrMalformedTransaction is returned when an embedded transaction can't be
	// parsed or has no inputs to drop.
	ErrMalformedTransaction = errors.New("malformed transaction")
	// ErrNotEnoughAccountKeys is returned when the instruction is not given
	// the state account.
	ErrNotEnoughAccountKeys = errors.New("not enough account keys")
	// ErrInvalidAccountData is returned when the account buffer holds bytes
	// that don't decode as a known state record.
	ErrInvalidAccountData = errors.New("invalid account data")
)

var (
	// ErrAccountNotInitialized ...
	ErrAccountNotInitialized = fmt.Errorf(
		"%w: account state is not initialized", ErrInvalidArgument,
	)
	// ErrMissingTxid ...
	ErrMissingTxid = fmt.Errorf("%w: missing deposit txid", ErrInvalidArgument)
	// ErrDepositNotFound ...
	ErrDepositNotFound = fmt.Errorf("%w: deposit not found", ErrInvalidArgument)
	// ErrDepositAlreadySettled is returned when trying to update or settle a
	// deposit that has been already paid out.
	ErrDepositAlreadySettled = fmt.Errorf(
		"%w: deposit already settled", ErrInvalidArgument,
	)
	// ErrTicketNotFound ...
	ErrTicketNotFound = fmt.Errorf("%w: ticket not found", ErrInvalidArgument)
	// ErrTicketListMismatch is returned when the parallel lists of a ticket
	// request have different lengths.
	ErrTicketListMismatch = fmt.Errorf(
		"%w: ticket lists must have the same length", ErrInvalidArgument,
	)
)

var (
	// ErrAccountNotFound ...
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists ...
	ErrAccountAlreadyExists = errors.New("account already exists")
	// ErrInvalidPubkey ...
	ErrInvalidPubkey = errors.New("pubkey must be a 32 bytes hex string")
)
