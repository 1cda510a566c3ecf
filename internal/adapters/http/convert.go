package httpadapter

import (
	api "receivables/internal/api"
	"receivables/internal/domain"
)

func toAPIAuction(a domain.Auction) api.Auction {
	out := api.Auction{
		Id:            a.ID,
		ClaimId:       a.ClaimID,
		FaceValue:     a.FaceValue.String(),
		ExpiresAt:     a.ExpiresAt,
		MinBid:        a.MinBid.String(),
		CurrentBid:    a.CurrentBid.String(),
		OriginalOwner: a.OriginalOwner,
		Custody:       a.Custody,
		Status:        api.AuctionStatus(a.Status),
		Winner:        a.Winner,
		CreatedAt:     a.CreatedAt,
		SettledAt:     a.SettledAt,
	}
	if a.FinalPrice != nil {
		p := a.FinalPrice.String()
		out.FinalPrice = &p
	}
	return out
}

func toAPIBid(b domain.Bid) api.Bid {
	out := api.Bid{
		Id:           b.ID,
		AuctionId:    b.AuctionID,
		Bidder:       b.Bidder,
		Amount:       b.Amount.String(),
		InstrumentId: b.InstrumentID,
		Status:       api.BidStatus(b.Status),
		CreatedAt:    b.CreatedAt,
	}
	if b.Reason != "" {
		r := b.Reason
		out.Reason = &r
	}
	return out
}

func toAPIResult(r domain.FinalizeResult) api.FinalizeResult {
	out := api.FinalizeResult{
		AuctionId: r.AuctionID,
		Outcome:   api.FinalizeOutcome(r.Outcome),
		SettledAt: r.SettledAt,
		Replayed:  r.Replayed,
	}
	if r.Detail != "" {
		d := r.Detail
		out.Detail = &d
	}
	if r.Winner != "" {
		w, p := r.Winner, r.Price.String()
		out.Winner = &w
		out.Price = &p
	}
	return out
}

func toAPIPayment(p domain.MaturityPayment) api.MaturityPayment {
	return api.MaturityPayment{
		Id:           p.ID,
		ClaimId:      p.ClaimID,
		Debtor:       p.Debtor,
		Creditor:     p.Creditor,
		Amount:       p.Amount.String(),
		MaturityAt:   p.MaturityAt,
		Status:       api.PaymentStatus(p.Status),
		InstrumentId: p.InstrumentID,
		Confirmation: p.Confirmation,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
