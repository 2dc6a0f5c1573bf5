package ports

import "github.com/tdex-network/luckyspind/internal/core/domain"

// TransactionSigner is the host subsystem collecting signatures for, and
// eventually broadcasting, the transactions built by the program.
type TransactionSigner interface {
	SetTransactionToSign(
		accounts []Account, toSign domain.TransactionToSign,
	) error
}
