package domain

import "encoding/hex"

// PubkeySize is the byte length of an x-only public key identifying both
// programs and accounts.
const PubkeySize = 32

// Pubkey identifies a program or an account.
type Pubkey [PubkeySize]byte

// NewPubkeyFromString parses a hex encoded 32 bytes key.
func NewPubkeyFromString(str string) (Pubkey, error) {
	var key Pubkey
	buf, err := hex.DecodeString(str)
	if err != nil || len(buf) != PubkeySize {
		return key, ErrInvalidPubkey
	}
	copy(key[:], buf)
	return key, nil
}

func (p Pubkey) String() string {
	return hex.EncodeToString(p[:])
}

// IsZero returns whether the key is made of zero bytes only.
func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}
