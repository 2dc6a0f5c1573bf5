package domain

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

const (
	SigningDirectivePending uint8 = iota
	SigningDirectiveSubmitted
)

// SigningInput is the persisted form of an InputToSign.
type SigningInput struct {
	Index  uint32
	Signer string
}

// SigningDirective is the record of a transaction handed to the signing
// subsystem on behalf of an account.
type SigningDirective struct {
	ID           string
	Account      string
	Txid         string
	TxHex        string
	InputsToSign []SigningInput
	Status       uint8
	Timestamp    int64
}

// NewSigningDirective returns a new pending directive for the given
// transaction to sign, requested by account.
func NewSigningDirective(
	account Pubkey, toSign TransactionToSign,
) (*SigningDirective, error) {
	rawTx, err := SerializeTransaction(toSign.Tx)
	if err != nil {
		return nil, err
	}

	inputs := make([]SigningInput, 0, len(toSign.InputsToSign))
	for _, in := range toSign.InputsToSign {
		inputs = append(inputs, SigningInput{
			Index:  in.Index,
			Signer: in.Signer.String(),
		})
	}

	return &SigningDirective{
		ID:           uuid.New().String(),
		Account:      account.String(),
		Txid:         toSign.Tx.TxHash().String(),
		TxHex:        hex.EncodeToString(rawTx),
		InputsToSign: inputs,
		Status:       SigningDirectivePending,
		Timestamp:    time.Now().Unix(),
	}, nil
}

// Submit marks the directive as forwarded to a remote signer.
func (d *SigningDirective) Submit() {
	d.Status = SigningDirectiveSubmitted
}
