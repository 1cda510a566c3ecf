package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	api "receivables/internal/api"
	"receivables/internal/domain"
	"receivables/internal/services/bids"
)

var errMissingBody = errors.New("missing body")

// requestError is input the handlers refuse before calling a service.
type requestError struct {
	err error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(err error) error { return &requestError{err: err} }

// classify maps an engine error to an HTTP status and a stable error code.
func classify(err error) (int, string) {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, bids.ErrInvalidBid):
		return http.StatusBadRequest, "invalid_bid"
	case errors.Is(err, domain.ErrBidTooLow):
		return http.StatusUnprocessableEntity, "bid_too_low"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity, "insufficient_funds"
	case errors.Is(err, domain.ErrAuctionClosed):
		return http.StatusConflict, "auction_closed"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrIndeterminate):
		return http.StatusServiceUnavailable, "ledger_indeterminate"
	case errors.Is(err, domain.ErrRejected):
		return http.StatusBadGateway, "ledger_rejected"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func errorResponse(ctx context.Context, code, message string) api.ErrorResponse {
	resp := api.ErrorResponse{Error: api.ErrorBody{Code: code, Message: message}}
	if id := middleware.GetReqID(ctx); id != "" {
		resp.RequestId = &id
	}
	return resp
}

// writeError renders an error returned by a strict handler.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Errorw("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse(r.Context(), code, msg))
}

// writeBadRequest renders path and body decoding failures from the generated
// layer.
func writeBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	writeJSON(w, http.StatusBadRequest, errorResponse(r.Context(), "bad_request", err.Error()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
