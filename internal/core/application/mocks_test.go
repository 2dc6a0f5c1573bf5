package application_test

import (
	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/luckyspind/internal/core/domain"
	"github.com/tdex-network/luckyspind/internal/core/ports"
)

// **** Signer ****

type mockSigner struct {
	mock.Mock
}

func (m *mockSigner) SetTransactionToSign(
	accounts []ports.Account, toSign domain.TransactionToSign,
) error {
	args := m.Called(accounts, toSign)
	return args.Error(0)
}
