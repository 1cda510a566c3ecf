package httpadapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	api "receivables/internal/api"
	"receivables/internal/ports"
)

func parseAmount(field, v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.Decimal{}, badRequest(fmt.Errorf("%s: %w", field, err))
	}
	return d, nil
}

func (s *Server) ListAuction(ctx context.Context, req api.ListAuctionRequestObject) (api.ListAuctionResponseObject, error) {
	if req.Body == nil {
		return nil, badRequest(errMissingBody)
	}
	minBid, err := parseAmount("min_bid", req.Body.MinBid)
	if err != nil {
		return nil, err
	}
	a, err := s.auctions.ListAuction(ctx, ports.ListAuctionRequest{
		ClaimID:   req.Body.ClaimId,
		Seller:    req.Body.Seller,
		MinBid:    minBid,
		ExpiresAt: req.Body.ExpiresAt,
		Custody:   req.Body.Custody != nil && *req.Body.Custody,
	})
	if err != nil {
		return nil, err
	}
	return api.ListAuction201JSONResponse(toAPIAuction(a)), nil
}

func (s *Server) GetAuction(ctx context.Context, req api.GetAuctionRequestObject) (api.GetAuctionResponseObject, error) {
	a, err := s.reader.GetAuction(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.GetAuction200JSONResponse(toAPIAuction(a)), nil
}

func (s *Server) GetAuctionBids(ctx context.Context, req api.GetAuctionBidsRequestObject) (api.GetAuctionBidsResponseObject, error) {
	bids, err := s.bids.ActiveBids(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	out := api.BidList{Bids: make([]api.Bid, 0, len(bids))}
	for _, b := range bids {
		out.Bids = append(out.Bids, toAPIBid(b))
	}
	return api.GetAuctionBids200JSONResponse(out), nil
}

func (s *Server) PlaceBid(ctx context.Context, req api.PlaceBidRequestObject) (api.PlaceBidResponseObject, error) {
	if req.Body == nil {
		return nil, badRequest(errMissingBody)
	}
	amount, err := parseAmount("amount", req.Body.Amount)
	if err != nil {
		return nil, err
	}
	in := ports.PlaceBidRequest{
		AuctionID:    req.Id,
		Bidder:       req.Body.Bidder,
		Amount:       amount,
		InstrumentID: req.Body.InstrumentId,
	}
	if req.Body.Confirmation != nil {
		in.Confirmation = *req.Body.Confirmation
	}
	b, err := s.bids.PlaceBid(ctx, in)
	if err != nil {
		return nil, err
	}
	return api.PlaceBid201JSONResponse(toAPIBid(b)), nil
}

// FinalizeAuction reports every settlement outcome as a FinalizeResult. A
// halted pass carries the status of its error class; an unknown auction gets
// the plain error envelope.
func (s *Server) FinalizeAuction(ctx context.Context, req api.FinalizeAuctionRequestObject) (api.FinalizeAuctionResponseObject, error) {
	res, err := s.auctions.FinalizeAuction(ctx, req.Id)
	if err != nil {
		status, code := classify(err)
		if status == http.StatusNotFound {
			return api.FinalizeAuction404JSONResponse{ErrorJSONResponse: api.ErrorJSONResponse(errorResponse(ctx, code, err.Error()))}, nil
		}
		return api.FinalizeAuctiondefaultJSONResponse{StatusCode: status, Body: toAPIResult(res)}, nil
	}
	return api.FinalizeAuction200JSONResponse(toAPIResult(res)), nil
}

func (s *Server) RunJob(ctx context.Context, req api.RunJobRequestObject) (api.RunJobResponseObject, error) {
	var (
		n   int
		err error
	)
	switch req.Job {
	case api.Auctions:
		n, err = s.auctions.ProcessExpiredAuctions(ctx)
	case api.Maturity:
		n, err = s.maturity.ProcessMaturedClaims(ctx)
	case api.Overdue:
		n, err = s.maturity.MarkOverduePayments(ctx)
	default:
		return api.RunJobdefaultJSONResponse{
			StatusCode: http.StatusNotFound,
			Body:       errorResponse(ctx, "unknown_job", "no job named "+string(req.Job)),
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return api.RunJob200JSONResponse{Job: string(req.Job), Processed: n}, nil
}

func (s *Server) GetPayment(ctx context.Context, req api.GetPaymentRequestObject) (api.GetPaymentResponseObject, error) {
	p, err := s.reader.GetPayment(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.GetPayment200JSONResponse(toAPIPayment(p)), nil
}

func (s *Server) RecordPaymentInstrument(ctx context.Context, req api.RecordPaymentInstrumentRequestObject) (api.RecordPaymentInstrumentResponseObject, error) {
	if req.Body == nil {
		return nil, badRequest(errMissingBody)
	}
	confirmation := ""
	if req.Body.Confirmation != nil {
		confirmation = *req.Body.Confirmation
	}
	p, err := s.maturity.RecordInstrumentCreated(ctx, req.Id, req.Body.InstrumentId, confirmation)
	if err != nil {
		return nil, err
	}
	return api.RecordPaymentInstrument200JSONResponse(toAPIPayment(p)), nil
}

func (s *Server) ConfirmPaymentCashed(ctx context.Context, req api.ConfirmPaymentCashedRequestObject) (api.ConfirmPaymentCashedResponseObject, error) {
	p, err := s.maturity.ConfirmInstrumentCashed(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.ConfirmPaymentCashed200JSONResponse(toAPIPayment(p)), nil
}
