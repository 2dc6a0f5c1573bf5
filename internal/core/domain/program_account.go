package domain

import "time"

// ProgramAccount is the host-side record of an account owned by the
// program: its key and the fixed-capacity data buffer.
type ProgramAccount struct {
	Key       string
	Data      []byte
	UpdatedAt int64
}

// NewProgramAccount returns an account with a zeroed data buffer of the
// given capacity.
func NewProgramAccount(key Pubkey, capacity int) *ProgramAccount {
	return &ProgramAccount{
		Key:       key.String(),
		Data:      make([]byte, capacity),
		UpdatedAt: time.Now().Unix(),
	}
}

// Capacity returns the size of the data buffer.
func (a *ProgramAccount) Capacity() int {
	return len(a.Data)
}
