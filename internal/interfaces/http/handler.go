package httpinterface

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/luckyspind/internal/core/application"
	"github.com/tdex-network/luckyspind/internal/core/domain"
	"go.uber.org/ratelimit"
)

const maxBodySize = 1 << 20

type handler struct {
	runtimeSvc application.RuntimeService
	limiter    ratelimit.Limiter
}

// NewRouter returns the HTTP router exposing the runtime service and the
// prometheus metrics. Instruction submissions are limited to ratePerSecond.
func NewRouter(
	runtimeSvc application.RuntimeService, ratePerSecond int,
) http.Handler {
	h := &handler{
		runtimeSvc: runtimeSvc,
		limiter:    ratelimit.New(ratePerSecond),
	}

	r := mux.NewRouter()
	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/account", h.createAccount).Methods(http.MethodPost)
	v1.HandleFunc("/account/{pubkey}", h.getState).Methods(http.MethodGet)
	v1.HandleFunc("/instruction", h.execute).Methods(http.MethodPost)
	v1.HandleFunc("/directives", h.listDirectives).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

func (h *handler) createAccount(w http.ResponseWriter, req *http.Request) {
	var body createAccountRequest
	if err := decodeBody(w, req, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.runtimeSvc.CreateAccount(req.Context(), body.Pubkey); err != nil {
		writeError(w, statusFromError(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, struct{}{})
}

func (h *handler) getState(w http.ResponseWriter, req *http.Request) {
	pubkey := mux.Vars(req)["pubkey"]
	state, err := h.runtimeSvc.GetState(req.Context(), pubkey)
	if err != nil {
		writeError(w, statusFromError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, newStateView(state))
}

func (h *handler) execute(w http.ResponseWriter, req *http.Request) {
	h.limiter.Take()

	var body executeRequest
	if err := decodeBody(w, req, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	data, err := hex.DecodeString(body.Data)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("data must be hex encoded"))
		return
	}

	if err := h.runtimeSvc.Execute(req.Context(), body.Account, data); err != nil {
		writeError(w, statusFromError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *handler) listDirectives(w http.ResponseWriter, req *http.Request) {
	account := req.URL.Query().Get("account")
	directives, err := h.runtimeSvc.ListSigningDirectives(req.Context(), account)
	if err != nil {
		writeError(w, statusFromError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, newDirectiveViews(directives))
}

func decodeBody(w http.ResponseWriter, req *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodySize))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAccountAlreadyExists),
		errors.Is(err, domain.ErrAccountBorrowFailed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInstruction),
		errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrMalformedTransaction),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrNotEnoughAccountKeys),
		errors.Is(err, domain.ErrInvalidPubkey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("internal error")
	}
	writeJSON(w, status, errorResponse{err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}
