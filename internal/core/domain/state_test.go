package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/luckyspind/internal/core/domain"
)

func TestDeserializeZeroedState(t *testing.T) {
	t.Parallel()

	state, length, err := domain.DeserializeState(make([]byte, 64))
	require.NoError(t, err)
	require.Zero(t, length)
	require.False(t, state.IsInitialized())
}

func TestStateSerializationRoundTrip(t *testing.T) {
	t.Parallel()

	state := domain.NewLuckySpinState()
	require.NoError(t, state.ApplyDeposit(domain.DepositUtxo{
		Txid:    "abc123",
		Satoshi: 50000,
		RuneID:  "RUNE1",
	}))

	buf, err := state.Serialize()
	require.NoError(t, err)

	data := make([]byte, 256)
	copy(data, buf)

	got, length, err := domain.DeserializeState(data)
	require.NoError(t, err)
	require.Equal(t, len(buf), length)
	require.True(t, got.IsInitialized())
	require.Equal(t, state.Deposits, got.Deposits)
	require.Empty(t, got.Tickets)
	require.Equal(t, state.Settlement, got.Settlement)
}

func TestFailingDeserializeState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "unknown_version",
			data: []byte{7, 0, 0, 0, 0},
		},
		{
			name: "oversized_deposit_list",
			data: []byte{domain.StateVersion, 0xff, 0xff, 0xff, 0xff, 0, 0, 0, 0},
		},
		{
			name: "truncated",
			data: []byte{domain.StateVersion, 3},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := domain.DeserializeState(tt.data)
			require.ErrorIs(t, err, domain.ErrInvalidAccountData)
		})
	}
}

func TestApplyDeposit(t *testing.T) {
	t.Parallel()

	state := domain.NewLuckySpinState()
	deposits := []domain.DepositUtxo{
		{Txid: "bb", Vout: 1, Satoshi: 1000},
		{Txid: "aa", Vout: 2, Satoshi: 2000},
		{Txid: "aa", Vout: 0, Satoshi: 3000},
	}
	for _, d := range deposits {
		require.NoError(t, state.ApplyDeposit(d))
	}

	require.Len(t, state.Deposits, 3)
	require.Equal(t, domain.UtxoKey{Txid: "aa", Vout: 0}, state.Deposits[0].Key())
	require.Equal(t, domain.UtxoKey{Txid: "aa", Vout: 2}, state.Deposits[1].Key())
	require.Equal(t, domain.UtxoKey{Txid: "bb", Vout: 1}, state.Deposits[2].Key())

	// A deposit with a known key replaces the stored one.
	require.NoError(t, state.ApplyDeposit(domain.DepositUtxo{
		Txid: "bb", Vout: 1, Satoshi: 1500, InscriptionID: "insc",
	}))
	require.Len(t, state.Deposits, 3)

	d, ok := state.GetDeposit(domain.UtxoKey{Txid: "bb", Vout: 1})
	require.True(t, ok)
	require.Equal(t, uint32(1500), d.Satoshi)
	require.Equal(t, "insc", d.InscriptionID)
	require.False(t, d.IsSettled())
}

func TestFailingApplyDeposit(t *testing.T) {
	t.Parallel()

	settled := domain.NewLuckySpinState()
	require.NoError(t, settled.ApplyDeposit(domain.DepositUtxo{Txid: "aa"}))
	require.NoError(t, settled.Settle(domain.UtxoKey{Txid: "aa"}, "ff"))

	tests := []struct {
		name          string
		state         *domain.LuckySpinState
		deposit       domain.DepositUtxo
		expectedError error
	}{
		{
			name:          "not_initialized",
			state:         &domain.LuckySpinState{},
			deposit:       domain.DepositUtxo{Txid: "aa"},
			expectedError: domain.ErrAccountNotInitialized,
		},
		{
			name:          "missing_txid",
			state:         domain.NewLuckySpinState(),
			deposit:       domain.DepositUtxo{Satoshi: 10},
			expectedError: domain.ErrMissingTxid,
		},
		{
			name:          "already_settled",
			state:         settled,
			deposit:       domain.DepositUtxo{Txid: "aa", Satoshi: 10},
			expectedError: domain.ErrDepositAlreadySettled,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.ApplyDeposit(tt.deposit)
			require.ErrorIs(t, err, tt.expectedError)
			require.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func TestTickets(t *testing.T) {
	t.Parallel()

	state := domain.NewLuckySpinState()
	require.NoError(t, state.AddTickets([]domain.Ticket{
		{InscriptionID: "i1", Txid: "t2", Vout: 0, Satoshi: 546},
		{InscriptionID: "i2", Txid: "t1", Vout: 1, Satoshi: 546},
	}))
	require.Len(t, state.Tickets, 2)
	require.Equal(t, "t1", state.Tickets[0].Txid)

	err := state.RemoveTickets([]domain.UtxoKey{
		{Txid: "t1", Vout: 1}, {Txid: "t3", Vout: 0},
	})
	require.ErrorIs(t, err, domain.ErrTicketNotFound)
	require.Len(t, state.Tickets, 2)

	require.NoError(t, state.RemoveTickets([]domain.UtxoKey{{Txid: "t1", Vout: 1}}))
	require.Len(t, state.Tickets, 1)
	require.Equal(t, "i1", state.Tickets[0].InscriptionID)
}

func TestRefreshEntitlement(t *testing.T) {
	t.Parallel()

	state := domain.NewLuckySpinState()
	require.NoError(t, state.ApplyDeposit(domain.DepositUtxo{Txid: "aa", Satoshi: 25000}))
	require.NoError(t, state.ApplyDeposit(domain.DepositUtxo{Txid: "bb", Satoshi: 15000}))

	state.RefreshEntitlement(10000)
	require.Equal(t, uint32(4), state.Entitlement)

	require.NoError(t, state.Settle(domain.UtxoKey{Txid: "aa"}, "ff"))
	state.RefreshEntitlement(10000)
	require.Equal(t, uint32(1), state.Entitlement)

	state.RefreshEntitlement(0)
	require.Zero(t, state.Entitlement)
}

func TestSettle(t *testing.T) {
	t.Parallel()

	state := domain.NewLuckySpinState()
	key := domain.UtxoKey{Txid: "abc123", Vout: 0}
	require.NoError(t, state.ApplyDeposit(domain.DepositUtxo{
		Txid: key.Txid, Vout: key.Vout, Satoshi: 50000,
	}))

	require.NoError(t, state.Settle(key, "swaptxid"))
	require.True(t, state.Settlement.IsPending())
	require.Equal(t, key.Txid, state.Settlement.Txid)
	require.Equal(t, "swaptxid", state.Settlement.SwapTxid)
	require.Equal(t, uint32(1), state.Settlement.Count)

	d, ok := state.GetDeposit(key)
	require.True(t, ok)
	require.True(t, d.IsSettled())

	require.ErrorIs(t, state.Settle(key, "other"), domain.ErrDepositAlreadySettled)
	require.ErrorIs(
		t, state.Settle(domain.UtxoKey{Txid: "missing"}, "other"),
		domain.ErrDepositNotFound,
	)
}
