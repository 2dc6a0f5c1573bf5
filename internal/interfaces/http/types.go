package httpinterface

import "github.com/tdex-network/luckyspind/internal/core/domain"

type createAccountRequest struct {
	Pubkey string `json:"pubkey"`
}

type executeRequest struct {
	Account string `json:"account"`
	// Data is the hex encoded instruction.
	Data string `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type depositView struct {
	Txid          string `json:"txid"`
	Vout          uint8  `json:"vout"`
	Satoshi       uint32 `json:"satoshi"`
	RuneID        string `json:"rune_id,omitempty"`
	RuneAmount    uint32 `json:"rune_amount,omitempty"`
	InscriptionID string `json:"inscription_id,omitempty"`
	Settled       bool   `json:"settled"`
}

type ticketView struct {
	InscriptionID string `json:"inscription_id"`
	Txid          string `json:"txid"`
	Vout          uint8  `json:"vout"`
	Satoshi       uint32 `json:"satoshi"`
}

type settlementView struct {
	Pending  bool   `json:"pending"`
	Txid     string `json:"txid,omitempty"`
	Vout     uint8  `json:"vout"`
	SwapTxid string `json:"swap_txid,omitempty"`
	Count    uint32 `json:"count"`
}

type stateView struct {
	Version     uint8          `json:"version"`
	Initialized bool           `json:"initialized"`
	Deposits    []depositView  `json:"deposits"`
	Tickets     []ticketView   `json:"tickets"`
	Entitlement uint32         `json:"entitlement"`
	Settlement  settlementView `json:"settlement"`
}

type inputToSignView struct {
	Index  uint32 `json:"index"`
	Signer string `json:"signer"`
}

type directiveView struct {
	ID           string            `json:"id"`
	Account      string            `json:"account"`
	Txid         string            `json:"txid"`
	TxHex        string            `json:"tx_hex"`
	InputsToSign []inputToSignView `json:"inputs_to_sign"`
	Submitted    bool              `json:"submitted"`
	Timestamp    int64             `json:"timestamp"`
}

func newStateView(s *domain.LuckySpinState) stateView {
	deposits := make([]depositView, 0, len(s.Deposits))
	for _, d := range s.Deposits {
		deposits = append(deposits, depositView{
			Txid:          d.Txid,
			Vout:          d.Vout,
			Satoshi:       d.Satoshi,
			RuneID:        d.RuneID,
			RuneAmount:    d.RuneAmount,
			InscriptionID: d.InscriptionID,
			Settled:       d.IsSettled(),
		})
	}
	tickets := make([]ticketView, 0, len(s.Tickets))
	for _, t := range s.Tickets {
		tickets = append(tickets, ticketView(t))
	}

	return stateView{
		Version:     s.Version,
		Initialized: s.IsInitialized(),
		Deposits:    deposits,
		Tickets:     tickets,
		Entitlement: s.Entitlement,
		Settlement: settlementView{
			Pending:  s.Settlement.IsPending(),
			Txid:     s.Settlement.Txid,
			Vout:     s.Settlement.Vout,
			SwapTxid: s.Settlement.SwapTxid,
			Count:    s.Settlement.Count,
		},
	}
}

func newDirectiveViews(list []domain.SigningDirective) []directiveView {
	views := make([]directiveView, 0, len(list))
	for _, d := range list {
		inputs := make([]inputToSignView, 0, len(d.InputsToSign))
		for _, in := range d.InputsToSign {
			inputs = append(inputs, inputToSignView(in))
		}
		views = append(views, directiveView{
			ID:           d.ID,
			Account:      d.Account,
			Txid:         d.Txid,
			TxHex:        d.TxHex,
			InputsToSign: inputs,
			Submitted:    d.Status == domain.SigningDirectiveSubmitted,
			Timestamp:    d.Timestamp,
		})
	}
	return views
}
