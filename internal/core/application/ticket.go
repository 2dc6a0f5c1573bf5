package application

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/luckyspind/internal/core/domain"
	"github.com/tdex-network/luckyspind/internal/core/ports"
)

// Ticket handles a ticket instruction: tickets are either added to the prize
// pool or removed once sent out with the admin transaction. In both cases the
// spin entitlement is recomputed from the available deposits.
func (p *Processor) Ticket(
	_ domain.Pubkey, accounts []ports.Account, data []byte,
) error {
	account, err := nextAccount(accounts)
	if err != nil {
		return err
	}

	req, err := domain.DecodeTicketRequest(data)
	if err != nil {
		return err
	}
	tickets, err := req.Tickets()
	if err != nil {
		return err
	}

	staged, err := borrowState(account)
	if err != nil {
		return err
	}
	defer staged.close()

	switch req.Instruction {
	case domain.TicketAdd:
		log.Debugf("add %d tickets to account %s", len(tickets), account.Key())
		if err := staged.state.AddTickets(tickets); err != nil {
			return err
		}

	case domain.TicketSend:
		if len(req.AdminSendTx) > 0 {
			tx, err := domain.DecodeTransaction(req.AdminSendTx)
			if err != nil {
				return err
			}
			log.Debugf("tickets sent with tx %s", tx.TxHash())
		}

		keys := make([]domain.UtxoKey, 0, len(tickets))
		for _, t := range tickets {
			keys = append(keys, t.Key())
		}
		log.Debugf("remove %d tickets from account %s", len(keys), account.Key())
		if err := staged.state.RemoveTickets(keys); err != nil {
			return err
		}

	default:
		return fmt.Errorf(
			"%w: unknown ticket instruction %d",
			domain.ErrInvalidArgument, req.Instruction,
		)
	}

	staged.state.RefreshEntitlement(p.ticketPrice)
	return staged.commit()
}
