package application

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/luckyspind/internal/core/domain"
	"github.com/tdex-network/luckyspind/internal/core/ports"
)

// Swap handles a swap instruction. The swap transaction embedded in the
// request is rebuilt without its collateral input and submitted to the
// signing subsystem; the deposit being paid out is then marked as settled.
func (p *Processor) Swap(
	_ domain.Pubkey, accounts []ports.Account, data []byte,
) error {
	account, err := nextAccount(accounts)
	if err != nil {
		return err
	}

	req, err := domain.DecodeSwapRequest(data)
	if err != nil {
		return err
	}

	swapTx, err := domain.DecodeTransaction(req.SwapTx)
	if err != nil {
		return err
	}
	tx, err := domain.BuildSettlementTx(swapTx)
	if err != nil {
		return err
	}

	staged, err := borrowState(account)
	if err != nil {
		return err
	}
	defer staged.close()

	if err := staged.state.Settle(req.Key(), tx.TxHash().String()); err != nil {
		return err
	}
	staged.state.RefreshEntitlement(p.ticketPrice)

	buf, err := staged.serialize()
	if err != nil {
		return err
	}

	toSign := domain.NewTransactionToSign(tx, account.Key())
	log.Debugf(
		"tx to sign %s: %d inputs, %d outputs",
		tx.TxHash(), len(tx.TxIn), len(tx.TxOut),
	)
	if err := p.signer.SetTransactionToSign(accounts, toSign); err != nil {
		return fmt.Errorf("failed to set transaction to sign: %w", err)
	}

	staged.write(buf)
	return nil
}
