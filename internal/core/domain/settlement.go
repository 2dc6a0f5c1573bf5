package domain

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/wire"
)

// SettlementTxVersion is the version of every transaction rebuilt for
// settlement.
const SettlementTxVersion = 2

// InputToSign tells the signing subsystem which account must authorize the
// input at the given index.
type InputToSign struct {
	Index  uint32
	Signer Pubkey
}

// TransactionToSign is the signing directive handed to the host: an unsigned
// transaction draft and the list of inputs requiring a signature.
type TransactionToSign struct {
	Tx           *wire.MsgTx
	InputsToSign []InputToSign
}

// DecodeTransaction parses a transaction serialized in the bitcoin wire
// format, with or without witness data.
func DecodeTransaction(raw []byte) (*wire.MsgTx, error) {
	if len(raw) <= 0 {
		return nil, fmt.Errorf("%w: empty transaction", ErrMalformedTransaction)
	}

	r := bytes.NewReader(raw)
	tx := &wire.MsgTx{}
	if err := tx.Deserialize(r); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedTransaction, err)
	}
	if r.Len() > 0 {
		return nil, fmt.Errorf(
			"%w: %d unexpected trailing bytes", ErrMalformedTransaction, r.Len(),
		)
	}
	return tx, nil
}

// BuildSettlementTx rebuilds the given transaction without its first input,
// that is the collateral funding the swap, keeping every other input in
// order and every output untouched. Version and locktime are reset.
func BuildSettlementTx(swapTx *wire.MsgTx) (*wire.MsgTx, error) {
	if swapTx == nil || len(swapTx.TxIn) <= 0 {
		return nil, fmt.Errorf(
			"%w: swap transaction has no inputs", ErrMalformedTransaction,
		)
	}

	src := swapTx.Copy()
	tx := wire.NewMsgTx(SettlementTxVersion)
	tx.LockTime = 0
	for _, in := range src.TxIn[1:] {
		tx.AddTxIn(in)
	}
	for _, out := range src.TxOut {
		tx.AddTxOut(out)
	}
	return tx, nil
}

// NewTransactionToSign returns the directive asking the given signer to
// authorize every input of tx.
func NewTransactionToSign(tx *wire.MsgTx, signer Pubkey) TransactionToSign {
	inputs := make([]InputToSign, 0, len(tx.TxIn))
	for i := range tx.TxIn {
		inputs = append(inputs, InputToSign{
			Index:  uint32(i),
			Signer: signer,
		})
	}
	return TransactionToSign{tx, inputs}
}

// SerializeTransaction returns the wire encoding of tx, witnesses included.
func SerializeTransaction(tx *wire.MsgTx) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(tx.SerializeSize())
	if err := tx.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
