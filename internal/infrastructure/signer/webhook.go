package signer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/tdex-network/luckyspind/internal/core/domain"
	"github.com/tdex-network/luckyspind/internal/core/ports"
	"github.com/tdex-network/luckyspind/pkg/stats"
)

const (
	webhookSignerType = "webhook"

	defaultRequestTimeout = 15 * time.Second
	tokenExpiry           = time.Minute
)

type webhookSigner struct {
	repo     domain.SigningDirectiveRepository
	endpoint string
	secret   string

	httpClient *client
	cb         *gobreaker.CircuitBreaker
}

// NewWebhookSigner returns a signer that POSTs every transaction to sign to
// the given endpoint of a remote signing service. If secret is not empty,
// requests carry an HS256 bearer token signed with it.
// Directives successfully delivered are stored as submitted.
func NewWebhookSigner(
	repo domain.SigningDirectiveRepository,
	endpoint, secret string,
	requestTimeout time.Duration,
) (ports.TransactionSigner, error) {
	if repo == nil {
		return nil, ErrNullRepository
	}
	if endpoint == "" {
		return nil, ErrMissingEndpoint
	}
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return &webhookSigner{
		repo:       repo,
		endpoint:   endpoint,
		secret:     secret,
		httpClient: newHTTPClient(requestTimeout),
		cb:         newCircuitBreaker(),
	}, nil
}

func (s *webhookSigner) SetTransactionToSign(
	accounts []ports.Account, toSign domain.TransactionToSign,
) error {
	directive, err := newDirective(accounts, toSign)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(newDirectivePayload(*directive))
	if err != nil {
		return err
	}
	if err := s.doRequest(payload); err != nil {
		return fmt.Errorf("remote signer: %w", err)
	}

	directive.Submit()
	if err := s.repo.AddSigningDirective(
		context.Background(), *directive,
	); err != nil {
		log.WithError(err).Warnf(
			"failed to store submitted directive %s", directive.ID,
		)
	}

	stats.ObserveSigningDirective(webhookSignerType)
	log.Debugf("submitted tx %s to remote signer", directive.Txid)
	return nil
}

func (s *webhookSigner) doRequest(payload []byte) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		headers := map[string]string{
			"Content-Type": "application/json",
		}
		if s.secret != "" {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
				IssuedAt:  time.Now().Unix(),
				ExpiresAt: time.Now().Add(tokenExpiry).Unix(),
			})
			tokenString, err := token.SignedString([]byte(s.secret))
			if err != nil {
				return nil, err
			}
			headers["Authorization"] = fmt.Sprintf("Bearer %s", tokenString)
		}

		status, resp, err := s.httpClient.post(s.endpoint, payload, headers)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("status %d: %s", status, resp)
		}
		return nil, nil
	})
	return err
}

type inputPayload struct {
	Index  uint32 `json:"index"`
	Signer string `json:"signer"`
}

type directivePayload struct {
	ID           string         `json:"id"`
	Account      string         `json:"account"`
	Txid         string         `json:"txid"`
	TxHex        string         `json:"tx_hex"`
	InputsToSign []inputPayload `json:"inputs_to_sign"`
}

func newDirectivePayload(d domain.SigningDirective) directivePayload {
	inputs := make([]inputPayload, 0, len(d.InputsToSign))
	for _, in := range d.InputsToSign {
		inputs = append(inputs, inputPayload{in.Index, in.Signer})
	}
	return directivePayload{
		ID:           d.ID,
		Account:      d.Account,
		Txid:         d.Txid,
		TxHex:        d.TxHex,
		InputsToSign: inputs,
	}
}

func newCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "signer",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests > 20 && failureRatio >= 0.7
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				log.Warn("remote signer seems down, stop allowing requests")
			}
			if from == gobreaker.StateOpen && to == gobreaker.StateHalfOpen {
				log.Info("checking remote signer status")
			}
			if from == gobreaker.StateHalfOpen && to == gobreaker.StateClosed {
				log.Info("remote signer seems ok, restart allowing requests")
			}
		},
	})
}
