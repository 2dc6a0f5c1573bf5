package domain

import (
	"fmt"
	"sort"

	"github.com/near/borsh-go"
)

// StateVersion is the schema tag of the state record. A zeroed account
// buffer decodes with version 0, meaning not yet initialized.
const StateVersion uint8 = 1

const (
	DepositAvailable uint8 = iota
	DepositSettled
)

const (
	SettlementIdle uint8 = iota
	SettlementPending
)

// UtxoKey identifies a deposit or a ticket, composed by its txid and vout.
type UtxoKey struct {
	Txid string
	Vout uint8
}

func (k UtxoKey) String() string {
	return fmt.Sprintf("%s:%d", k.Txid, k.Vout)
}

func (k UtxoKey) less(other UtxoKey) bool {
	if k.Txid != other.Txid {
		return k.Txid < other.Txid
	}
	return k.Vout < other.Vout
}

// DepositUtxo holds info about an output sent to the program account,
// optionally carrying runes or an inscription.
type DepositUtxo struct {
	Txid          string
	Vout          uint8
	Satoshi       uint32
	RuneID        string
	RuneAmount    uint32
	InscriptionID string
	Status        uint8
}

func (d DepositUtxo) Key() UtxoKey {
	return UtxoKey{d.Txid, d.Vout}
}

// IsSettled returns whether the deposit has already been paid out.
func (d DepositUtxo) IsSettled() bool {
	return d.Status == DepositSettled
}

// Ticket is an inscription-backed entry of the lottery prize pool.
type Ticket struct {
	InscriptionID string
	Txid          string
	Vout          uint8
	Satoshi       uint32
}

func (t Ticket) Key() UtxoKey {
	return UtxoKey{t.Txid, t.Vout}
}

// Settlement is the cursor tracking the last swap submitted for signing.
type Settlement struct {
	Status   uint8
	Txid     string
	Vout     uint8
	SwapTxid string
	Count    uint32
}

// IsPending returns whether a swap has been submitted and is waiting to be
// signed.
func (s Settlement) IsPending() bool {
	return s.Status == SettlementPending
}

// LuckySpinState is the record persisted at the beginning of the program
// account data.
// Deposits and Tickets are kept sorted by key so that the serialization is
// deterministic.
type LuckySpinState struct {
	Version     uint8
	Deposits    []DepositUtxo
	Tickets     []Ticket
	Entitlement uint32
	Settlement  Settlement
}

// NewLuckySpinState returns the default, initialized, state record.
func NewLuckySpinState() *LuckySpinState {
	return &LuckySpinState{
		Version:  StateVersion,
		Deposits: make([]DepositUtxo, 0),
		Tickets:  make([]Ticket, 0),
	}
}

// DeserializeState decodes the state record stored at the beginning of the
// given account data. Alongside the record, it returns the length in bytes of
// its serialized form.
// An all-zero buffer results in a non-initialized record of length 0.
func DeserializeState(data []byte) (*LuckySpinState, int, error) {
	if isZeroed(data) {
		return &LuckySpinState{}, 0, nil
	}

	state := &LuckySpinState{}
	if err := deserialize(state, data); err != nil {
		return nil, -1, fmt.Errorf("%w: %s", ErrInvalidAccountData, err)
	}
	if state.Version != StateVersion {
		return nil, -1, fmt.Errorf(
			"%w: unknown state version %d", ErrInvalidAccountData, state.Version,
		)
	}

	buf, err := state.Serialize()
	if err != nil {
		return nil, -1, fmt.Errorf("%w: %s", ErrInvalidAccountData, err)
	}
	return state, len(buf), nil
}

// Serialize returns the borsh encoding of the record.
func (s *LuckySpinState) Serialize() ([]byte, error) {
	return borsh.Serialize(*s)
}

// IsInitialized returns whether the record has been created by a deposit
// initialize instruction.
func (s *LuckySpinState) IsInitialized() bool {
	return s.Version == StateVersion
}

// GetDeposit returns the deposit identified by the given key, if any.
func (s *LuckySpinState) GetDeposit(key UtxoKey) (*DepositUtxo, bool) {
	i, found := s.depositIndex(key)
	if !found {
		return nil, false
	}
	return &s.Deposits[i], true
}

// ApplyDeposit records the given deposit. A deposit with the same key is
// replaced rather than accumulated, unless it has been already settled.
func (s *LuckySpinState) ApplyDeposit(deposit DepositUtxo) error {
	if !s.IsInitialized() {
		return ErrAccountNotInitialized
	}
	if len(deposit.Txid) <= 0 {
		return ErrMissingTxid
	}

	key := deposit.Key()
	i, found := s.depositIndex(key)
	if found {
		if s.Deposits[i].IsSettled() {
			return ErrDepositAlreadySettled
		}
		deposit.Status = s.Deposits[i].Status
		s.Deposits[i] = deposit
		return nil
	}

	deposit.Status = DepositAvailable
	s.Deposits = append(s.Deposits, DepositUtxo{})
	copy(s.Deposits[i+1:], s.Deposits[i:])
	s.Deposits[i] = deposit
	return nil
}

// AddTickets adds the given tickets to the prize pool, replacing those with
// the same key.
func (s *LuckySpinState) AddTickets(tickets []Ticket) error {
	if !s.IsInitialized() {
		return ErrAccountNotInitialized
	}

	for _, ticket := range tickets {
		i, found := s.ticketIndex(ticket.Key())
		if found {
			s.Tickets[i] = ticket
			continue
		}
		s.Tickets = append(s.Tickets, Ticket{})
		copy(s.Tickets[i+1:], s.Tickets[i:])
		s.Tickets[i] = ticket
	}
	return nil
}

// RemoveTickets removes the tickets identified by the given keys. Either all
// of them are removed or none.
func (s *LuckySpinState) RemoveTickets(keys []UtxoKey) error {
	if !s.IsInitialized() {
		return ErrAccountNotInitialized
	}

	toRemove := make(map[UtxoKey]struct{}, len(keys))
	for _, key := range keys {
		if _, found := s.ticketIndex(key); !found {
			return fmt.Errorf("%w: %s", ErrTicketNotFound, key)
		}
		toRemove[key] = struct{}{}
	}

	tickets := make([]Ticket, 0, len(s.Tickets))
	for _, ticket := range s.Tickets {
		if _, ok := toRemove[ticket.Key()]; ok {
			continue
		}
		tickets = append(tickets, ticket)
	}
	s.Tickets = tickets
	return nil
}

// RefreshEntitlement updates the number of spins available given the amount
// of not yet settled deposits and the price of a single spin in satoshis.
func (s *LuckySpinState) RefreshEntitlement(ticketPrice uint64) {
	if ticketPrice == 0 {
		s.Entitlement = 0
		return
	}

	var total uint64
	for _, d := range s.Deposits {
		if !d.IsSettled() {
			total += uint64(d.Satoshi)
		}
	}
	spins := total / ticketPrice
	if spins > uint64(^uint32(0)) {
		spins = uint64(^uint32(0))
	}
	s.Entitlement = uint32(spins)
}

// Settle marks the deposit identified by key as paid out by the swap
// transaction with the given txid and moves the settlement cursor.
func (s *LuckySpinState) Settle(key UtxoKey, swapTxid string) error {
	if !s.IsInitialized() {
		return ErrAccountNotInitialized
	}

	deposit, ok := s.GetDeposit(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrDepositNotFound, key)
	}
	if deposit.IsSettled() {
		return ErrDepositAlreadySettled
	}

	deposit.Status = DepositSettled
	s.Settlement = Settlement{
		Status:   SettlementPending,
		Txid:     key.Txid,
		Vout:     key.Vout,
		SwapTxid: swapTxid,
		Count:    s.Settlement.Count + 1,
	}
	return nil
}

func (s *LuckySpinState) depositIndex(key UtxoKey) (int, bool) {
	i := sort.Search(len(s.Deposits), func(i int) bool {
		return !s.Deposits[i].Key().less(key)
	})
	return i, i < len(s.Deposits) && s.Deposits[i].Key() == key
}

func (s *LuckySpinState) ticketIndex(key UtxoKey) (int, bool) {
	i := sort.Search(len(s.Tickets), func(i int) bool {
		return !s.Tickets[i].Key().less(key)
	})
	return i, i < len(s.Tickets) && s.Tickets[i].Key() == key
}

func isZeroed(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
