package ports

import "github.com/tdex-network/luckyspind/internal/core/domain"

// Account is the host view of an account passed to the program.
type Account interface {
	Key() domain.Pubkey
	IsSigner() bool
	IsWritable() bool
	// TryBorrowMutData grants exclusive access to the account data buffer
	// until release is called. It fails, without blocking, if the buffer is
	// already borrowed.
	TryBorrowMutData() (data []byte, release func(), err error)
}
