package signer

import "errors"

var (
	// ErrNullRepository specifies that a signing directive repository is
	// required.
	ErrNullRepository = errors.New("signing directive repository must not be null")
	// ErrMissingEndpoint specifies that the remote signer URL is required.
	ErrMissingEndpoint = errors.New("remote signer endpoint must not be empty")
	// ErrMissingAccounts is returned when no account is given together with
	// the transaction to sign.
	ErrMissingAccounts = errors.New("at least one account is required")
	// ErrSignerNotAuthorized is returned when an input must be signed by an
	// account not given as signer of the instruction.
	ErrSignerNotAuthorized = errors.New("input signer is not a signer account")
	// ErrNothingToSign is returned when the transaction is missing or none of
	// its inputs is listed to be signed.
	ErrNothingToSign = errors.New("transaction has no inputs to sign")
)
