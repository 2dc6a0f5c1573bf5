package application

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/luckyspind/internal/core/domain"
	"github.com/tdex-network/luckyspind/internal/core/ports"
)

// Deposit handles a deposit instruction. The initialize sub-instruction
// writes the default state record to a fresh account, while apply records
// a deposit made to the program.
func (p *Processor) Deposit(
	_ domain.Pubkey, accounts []ports.Account, data []byte,
) error {
	account, err := nextAccount(accounts)
	if err != nil {
		return err
	}

	req, err := domain.DecodeDepositRequest(data)
	if err != nil {
		return err
	}

	staged, err := borrowState(account)
	if err != nil {
		return err
	}
	defer staged.close()

	switch req.Instruction {
	case domain.DepositInitialize:
		log.Debugf("initialize account %s", account.Key())
		if staged.state.IsInitialized() {
			log.Debugf("account %s already initialized", account.Key())
			return nil
		}
		staged.state = domain.NewLuckySpinState()

	case domain.DepositApply:
		log.Debugf(
			"deposit %s of %s for account %s",
			req.Key(), btcutil.Amount(req.Satoshi), account.Key(),
		)
		if err := staged.state.ApplyDeposit(domain.DepositUtxo{
			Txid:          req.Txid,
			Vout:          req.Vout,
			Satoshi:       req.Satoshi,
			RuneID:        req.RuneID,
			RuneAmount:    req.RuneAmount,
			InscriptionID: req.InscriptionID,
		}); err != nil {
			return err
		}

	default:
		return fmt.Errorf(
			"%w: unknown deposit instruction %d",
			domain.ErrInvalidArgument, req.Instruction,
		)
	}

	return staged.commit()
}
