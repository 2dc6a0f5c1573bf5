package application

import (
	"errors"
	"sync"

	"github.com/tdex-network/luckyspind/internal/core/domain"
)

var (
	// ErrAccountAlreadyBorrowed ...
	ErrAccountAlreadyBorrowed = errors.New("account data is already borrowed")
	// ErrAccountNotWritable ...
	ErrAccountNotWritable = errors.New("account is not writable")
)

// HostAccount is an in-process implementation of ports.Account backed by a
// fixed-capacity buffer that can be mutably borrowed by one holder at a time.
type HostAccount struct {
	key        domain.Pubkey
	isSigner   bool
	isWritable bool

	lock sync.Mutex
	data []byte
}

// NewHostAccount returns a signer, writable, account owning a copy of data.
func NewHostAccount(key domain.Pubkey, data []byte) *HostAccount {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &HostAccount{
		key:        key,
		isSigner:   true,
		isWritable: true,
		data:       buf,
	}
}

// NewReadOnlyHostAccount returns an account whose data can't be borrowed
// mutably.
func NewReadOnlyHostAccount(key domain.Pubkey, data []byte) *HostAccount {
	acc := NewHostAccount(key, data)
	acc.isSigner = false
	acc.isWritable = false
	return acc
}

func (a *HostAccount) Key() domain.Pubkey {
	return a.key
}

func (a *HostAccount) IsSigner() bool {
	return a.isSigner
}

func (a *HostAccount) IsWritable() bool {
	return a.isWritable
}

func (a *HostAccount) TryBorrowMutData() ([]byte, func(), error) {
	if !a.isWritable {
		return nil, nil, ErrAccountNotWritable
	}
	if !a.lock.TryLock() {
		return nil, nil, ErrAccountAlreadyBorrowed
	}

	var once sync.Once
	release := func() {
		once.Do(a.lock.Unlock)
	}
	return a.data, release, nil
}

// Snapshot waits for any outstanding borrow to be released and returns a
// copy of the account data.
func (a *HostAccount) Snapshot() []byte {
	a.lock.Lock()
	defer a.lock.Unlock()

	buf := make([]byte, len(a.data))
	copy(buf, a.data)
	return buf
}
