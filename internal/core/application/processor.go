package application

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/luckyspind/internal/core/domain"
	"github.com/tdex-network/luckyspind/internal/core/ports"
)

// DefaultTicketPrice is the amount of satoshis a deposit must carry for each
// spin it entitles to.
const DefaultTicketPrice = 10000

// Processor is the entrypoint of the program: it routes every instruction to
// the handler of its opcode.
type Processor struct {
	signer      ports.TransactionSigner
	ticketPrice uint64
}

func NewProcessor(
	signer ports.TransactionSigner, ticketPrice uint64,
) (*Processor, error) {
	if signer == nil {
		return nil, fmt.Errorf("missing transaction signer")
	}
	if ticketPrice == 0 {
		return nil, fmt.Errorf("ticket price must be greater than zero")
	}
	return &Processor{signer, ticketPrice}, nil
}

// ProcessInstruction reads the opcode at byte 0 and forwards the whole
// instruction to the matching handler.
func (p *Processor) ProcessInstruction(
	programID domain.Pubkey, accounts []ports.Account, data []byte,
) error {
	op, err := domain.ParseOpcode(data)
	if err != nil {
		log.WithError(err).Debug("invalid instruction")
		return err
	}
	log.Debugf("program %s: %s instruction", programID, op)

	switch op {
	case domain.OpcodeDeposit:
		return p.Deposit(programID, accounts, data)
	case domain.OpcodeTicket:
		return p.Ticket(programID, accounts, data)
	default:
		return p.Swap(programID, accounts, data)
	}
}
