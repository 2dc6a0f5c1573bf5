package application

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/luckyspind/internal/core/domain"
	"github.com/tdex-network/luckyspind/internal/core/ports"
)

// stagedState is a state record decoded from a borrowed account buffer.
// Mutations are made on the record only and become visible in the buffer
// just when commit succeeds.
type stagedState struct {
	data    []byte
	release func()
	prevLen int

	state *domain.LuckySpinState
}

func nextAccount(accounts []ports.Account) (ports.Account, error) {
	if len(accounts) <= 0 || accounts[0] == nil {
		return nil, domain.ErrNotEnoughAccountKeys
	}
	return accounts[0], nil
}

func borrowState(account ports.Account) (*stagedState, error) {
	data, release, err := account.TryBorrowMutData()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountBorrowFailed, err)
	}

	state, prevLen, err := domain.DeserializeState(data)
	if err != nil {
		release()
		return nil, err
	}

	return &stagedState{
		data:    data,
		release: release,
		prevLen: prevLen,
		state:   state,
	}, nil
}

// commit serializes the staged record and overwrites the leading bytes of
// the account buffer with it. The buffer is left untouched on failure.
func (s *stagedState) commit() error {
	buf, err := s.serialize()
	if err != nil {
		return err
	}
	s.write(buf)
	return nil
}

// serialize returns the encoding of the staged record, failing if it doesn't
// fit the account buffer.
func (s *stagedState) serialize() ([]byte, error) {
	buf, err := s.state.Serialize()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAccountData, err)
	}
	if len(buf) > len(s.data) {
		return nil, fmt.Errorf(
			"%w: record needs %d bytes, account has %d",
			domain.ErrCapacityExceeded, len(buf), len(s.data),
		)
	}
	return buf, nil
}

// write copies buf at the beginning of the account buffer and zeroes the
// bytes left over by a longer previous record.
func (s *stagedState) write(buf []byte) {
	log.Debugf("current data %x", s.data[:s.prevLen])
	log.Debugf("updated data %x", buf)

	copy(s.data, buf)
	for i := len(buf); i < s.prevLen; i++ {
		s.data[i] = 0
	}
	s.prevLen = len(buf)
}

func (s *stagedState) close() {
	s.release()
}
