package domain

import (
	"fmt"
	"reflect"

	"github.com/near/borsh-go"
)

// Opcode is the leading byte of every instruction.
type Opcode uint8

const (
	OpcodeDeposit Opcode = iota
	OpcodeTicket
	OpcodeSwap
)

func (o Opcode) String() string {
	switch o {
	case OpcodeDeposit:
		return "deposit"
	case OpcodeTicket:
		return "ticket"
	case OpcodeSwap:
		return "swap"
	default:
		return "unknown"
	}
}

// Deposit sub-instructions.
const (
	DepositInitialize uint8 = iota
	DepositApply
)

// Ticket sub-instructions.
const (
	TicketAdd uint8 = iota
	TicketSend
)

// DepositRequest is the payload of an OpcodeDeposit instruction.
type DepositRequest struct {
	Instruction   uint8
	Txid          string
	Vout          uint8
	Satoshi       uint32
	RuneID        string
	RuneAmount    uint32
	InscriptionID string
}

// Key returns the identifier of the deposit referenced by the request.
func (r DepositRequest) Key() UtxoKey {
	return UtxoKey{r.Txid, r.Vout}
}

// TicketRequest is the payload of an OpcodeTicket instruction. The lists are
// parallel: the i-th ticket is made of the i-th element of each of them.
type TicketRequest struct {
	Instruction   uint8
	Txid          []string
	Vout          []uint8
	Satoshi       []uint32
	InscriptionID []string
	AdminSendTx   []byte
}

// Tickets zips the parallel lists of the request into a list of tickets.
func (r TicketRequest) Tickets() ([]Ticket, error) {
	count := len(r.Txid)
	if len(r.Vout) != count || len(r.Satoshi) != count ||
		len(r.InscriptionID) != count {
		return nil, ErrTicketListMismatch
	}

	tickets := make([]Ticket, 0, count)
	for i := 0; i < count; i++ {
		tickets = append(tickets, Ticket{
			InscriptionID: r.InscriptionID[i],
			Txid:          r.Txid[i],
			Vout:          r.Vout[i],
			Satoshi:       r.Satoshi[i],
		})
	}
	return tickets, nil
}

// SwapRequest is the payload of an OpcodeSwap instruction.
type SwapRequest struct {
	Txid   string
	Vout   uint8
	SwapTx []byte
}

// Key returns the identifier of the deposit being settled.
func (r SwapRequest) Key() UtxoKey {
	return UtxoKey{r.Txid, r.Vout}
}

// ParseOpcode returns the opcode of the given instruction.
func ParseOpcode(data []byte) (Opcode, error) {
	if len(data) <= 0 {
		return 0, fmt.Errorf("%w: empty instruction", ErrInvalidInstruction)
	}
	op := Opcode(data[0])
	if op > OpcodeSwap {
		return 0, fmt.Errorf("%w: unknown opcode %d", ErrInvalidInstruction, op)
	}
	return op, nil
}

// DecodeDepositRequest parses the payload, ie. the bytes following the
// opcode, of a deposit instruction.
func DecodeDepositRequest(data []byte) (*DepositRequest, error) {
	req := &DepositRequest{}
	if err := decodePayload(data, OpcodeDeposit, req); err != nil {
		return nil, err
	}
	return req, nil
}

// DecodeTicketRequest parses the payload of a ticket instruction.
func DecodeTicketRequest(data []byte) (*TicketRequest, error) {
	req := &TicketRequest{}
	if err := decodePayload(data, OpcodeTicket, req); err != nil {
		return nil, err
	}
	return req, nil
}

// DecodeSwapRequest parses the payload of a swap instruction.
func DecodeSwapRequest(data []byte) (*SwapRequest, error) {
	req := &SwapRequest{}
	if err := decodePayload(data, OpcodeSwap, req); err != nil {
		return nil, err
	}
	return req, nil
}

// EncodeInstruction prefixes the borsh serialization of the given request
// with its opcode.
func EncodeInstruction(op Opcode, req interface{}) ([]byte, error) {
	payload, err := borsh.Serialize(indirect(req))
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(op)}, payload...), nil
}

func decodePayload(data []byte, op Opcode, req interface{}) error {
	opcode, err := ParseOpcode(data)
	if err != nil {
		return err
	}
	if opcode != op {
		return fmt.Errorf(
			"%w: expected %s instruction, got %s", ErrInvalidArgument, op, opcode,
		)
	}
	payload := data[1:]
	if err := deserialize(req, payload); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidArgument, err)
	}

	// Trailing bytes are not allowed.
	buf, err := borsh.Serialize(indirect(req))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidArgument, err)
	}
	if len(buf) != len(payload) {
		return fmt.Errorf(
			"%w: %d unexpected trailing bytes",
			ErrInvalidArgument, len(payload)-len(buf),
		)
	}
	return nil
}

// indirect dereferences pointers since borsh encodes them as optional values.
func indirect(v interface{}) interface{} {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	return rv.Interface()
}
