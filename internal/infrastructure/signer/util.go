package signer

import (
	"fmt"

	"github.com/tdex-network/luckyspind/internal/core/domain"
	"github.com/tdex-network/luckyspind/internal/core/ports"
)

// newDirective checks that every input of the transaction is bound to one
// of the signer accounts and returns the directive to hand over to the
// signing subsystem, requested by the first account.
func newDirective(
	accounts []ports.Account, toSign domain.TransactionToSign,
) (*domain.SigningDirective, error) {
	if len(accounts) <= 0 {
		return nil, ErrMissingAccounts
	}
	if toSign.Tx == nil {
		return nil, ErrNothingToSign
	}
	// A draft left without inputs carries an empty list of inputs to sign.
	if len(toSign.InputsToSign) <= 0 && len(toSign.Tx.TxIn) > 0 {
		return nil, ErrNothingToSign
	}

	signers := make(map[domain.Pubkey]struct{})
	for _, acc := range accounts {
		if acc.IsSigner() {
			signers[acc.Key()] = struct{}{}
		}
	}
	for _, in := range toSign.InputsToSign {
		if int(in.Index) >= len(toSign.Tx.TxIn) {
			return nil, fmt.Errorf(
				"%w: input index %d out of range", domain.ErrMalformedTransaction,
				in.Index,
			)
		}
		if _, ok := signers[in.Signer]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrSignerNotAuthorized, in.Signer)
		}
	}

	return domain.NewSigningDirective(accounts[0].Key(), toSign)
}
