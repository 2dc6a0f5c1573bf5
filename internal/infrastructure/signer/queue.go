package signer

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/luckyspind/internal/core/domain"
	"github.com/tdex-network/luckyspind/internal/core/ports"
	"github.com/tdex-network/luckyspind/pkg/stats"
)

const queueSignerType = "queue"

type queueSigner struct {
	repo domain.SigningDirectiveRepository
}

// NewQueueSigner returns a signer that stores every transaction to sign as a
// pending directive, left to be collected by an external signing process.
func NewQueueSigner(
	repo domain.SigningDirectiveRepository,
) (ports.TransactionSigner, error) {
	if repo == nil {
		return nil, ErrNullRepository
	}
	return &queueSigner{repo}, nil
}

func (s *queueSigner) SetTransactionToSign(
	accounts []ports.Account, toSign domain.TransactionToSign,
) error {
	directive, err := newDirective(accounts, toSign)
	if err != nil {
		return err
	}

	if err := s.repo.AddSigningDirective(
		context.Background(), *directive,
	); err != nil {
		return err
	}

	stats.ObserveSigningDirective(queueSignerType)
	log.Debugf("queued tx %s to sign with id %s", directive.Txid, directive.ID)
	return nil
}
