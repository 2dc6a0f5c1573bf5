package application_test

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/luckyspind/internal/core/application"
	"github.com/tdex-network/luckyspind/internal/core/domain"
	"github.com/tdex-network/luckyspind/internal/core/ports"
)

const (
	accountCapacity = 1024
	ticketPrice     = 10000
)

var (
	programID  = domain.Pubkey{0xff}
	accountKey = domain.Pubkey{0x01}
)

func newTestProcessor(t *testing.T, signer ports.TransactionSigner) *application.Processor {
	processor, err := application.NewProcessor(signer, ticketPrice)
	require.NoError(t, err)
	return processor
}

func newTestAccount(capacity int) *application.HostAccount {
	return application.NewHostAccount(accountKey, make([]byte, capacity))
}

func accountsOf(acc ports.Account) []ports.Account {
	return []ports.Account{acc}
}

func encode(t *testing.T, op domain.Opcode, req interface{}) []byte {
	data, err := domain.EncodeInstruction(op, req)
	require.NoError(t, err)
	return data
}

func initializeInstruction(t *testing.T) []byte {
	return encode(t, domain.OpcodeDeposit, domain.DepositRequest{
		Instruction: domain.DepositInitialize,
	})
}

func depositInstruction(
	t *testing.T, txid string, vout uint8, satoshi uint32,
) []byte {
	return encode(t, domain.OpcodeDeposit, domain.DepositRequest{
		Instruction: domain.DepositApply,
		Txid:        txid,
		Vout:        vout,
		Satoshi:     satoshi,
	})
}

func swapInstruction(
	t *testing.T, txid string, vout uint8, swapTx *wire.MsgTx,
) []byte {
	raw, err := domain.SerializeTransaction(swapTx)
	require.NoError(t, err)
	return encode(t, domain.OpcodeSwap, domain.SwapRequest{
		Txid:   txid,
		Vout:   vout,
		SwapTx: raw,
	})
}

func newSwapTx(numInputs, numOutputs int) *wire.MsgTx {
	tx := wire.NewMsgTx(1)
	for i := 0; i < numInputs; i++ {
		hash := chainhash.DoubleHashH([]byte{byte(i)})
		tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&hash, uint32(i)), nil, nil))
	}
	for i := 0; i < numOutputs; i++ {
		script := append([]byte{0x51, 0x20}, bytes.Repeat([]byte{byte(i)}, 32)...)
		tx.AddTxOut(wire.NewTxOut(int64(546+i), script))
	}
	return tx
}

func stateOf(t *testing.T, acc *application.HostAccount) *domain.LuckySpinState {
	state, _, err := domain.DeserializeState(acc.Snapshot())
	require.NoError(t, err)
	return state
}
