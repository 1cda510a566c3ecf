package auctions

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"

	"receivables/internal/domain"
	"receivables/internal/ports"
)

var errPending = errors.New("ledger state not settled yet")

// settle runs the ranked candidate loop. Candidates are strictly sequential:
// the first success ends the pass.
func (s *Service) settle(ctx context.Context, a domain.Auction, l *lease) (domain.FinalizeResult, error) {
	bids, err := s.repo.ActiveBids(ctx, a.ID)
	if err != nil {
		return errorResult(a.ID, err), fmt.Errorf("active bids: %w", err)
	}
	if len(bids) == 0 {
		return s.unlist(ctx, a, l, "no active bids")
	}

	// No bidder is charged for a claim the auction cannot deliver.
	owner, err := s.ownerOf(ctx, a.ClaimID)
	switch {
	case err == nil:
	case rejected(err):
		return s.custodyLost(a, fmt.Sprintf("claim owner: %v", err))
	default:
		return domain.FinalizeResult{AuctionID: a.ID, Outcome: domain.OutcomeDeferred, Detail: "claim owner: " + err.Error()}, nil
	}
	recovering := false
	if from := s.custodian(a); owner != from {
		b, ok := bidFrom(bids, owner)
		if !ok {
			return s.custodyLost(a, fmt.Sprintf("claim %s held by %s, expected %s", a.ClaimID, owner, from))
		}
		// an earlier pass delivered the claim to this bidder but never committed
		log.Infow("resuming delivered settlement", "auction", a.ID, "bid", b.ID, "bidder", b.Bidder)
		bids = []domain.Bid{b}
		recovering = true
	}

	for _, b := range bids {
		res := s.attempt(ctx, a, b, l)
		switch res.Kind {
		case domain.CandidateSuccess:
			return s.complete(ctx, a, b)
		case domain.CandidateIndeterminate:
			log.Warnw("deferring settlement", "auction", a.ID, "bid", b.ID, "reason", res.Reason)
			return domain.FinalizeResult{AuctionID: a.ID, Outcome: domain.OutcomeDeferred, Detail: res.Reason}, nil
		case domain.CandidateCustodyLost:
			return s.custodyLost(a, res.Reason)
		}
		if recovering {
			return s.custodyLost(a, fmt.Sprintf("claim delivered to %s but settlement failed: %s", b.Bidder, res.RejectReason()))
		}

		if err := s.reject(ctx, a, b, res); err != nil {
			return errorResult(a.ID, err), err
		}
	}
	return s.unlist(ctx, a, l, fmt.Sprintf("all %d candidates failed", len(bids)))
}

func bidFrom(bids []domain.Bid, bidder string) (domain.Bid, bool) {
	for _, b := range bids {
		if b.Bidder == bidder {
			return b, true
		}
	}
	return domain.Bid{}, false
}

// custodian is the account that holds the claim while the auction is active.
func (s *Service) custodian(a domain.Auction) string {
	if a.Custody {
		return s.cfg.PlatformAccount
	}
	return a.OriginalOwner
}

func (s *Service) custodyLost(a domain.Auction, detail string) (domain.FinalizeResult, error) {
	err := fmt.Errorf("%w: %s", domain.ErrInvalidTransition, detail)
	log.Errorw("claim custody mismatch; settlement halted", "auction", a.ID, "claim", a.ClaimID, "detail", detail)
	return errorResult(a.ID, err), err
}

// step renews the lease ahead of a ledger step so that no single step can
// outlive it.
func (s *Service) step(ctx context.Context, l *lease) (domain.CandidateResult, bool) {
	ok, err := l.renew(ctx)
	if err != nil {
		return indeterminate("renew lease", err), false
	}
	if !ok {
		return domain.CandidateResult{Kind: domain.CandidateIndeterminate, Reason: "lease lost"}, false
	}
	return domain.CandidateResult{}, true
}

// attempt runs one candidate: balance re-check, payment collection, claim
// transfer. Each step first looks at the ledger so a pass interrupted after
// a step does not repeat it.
func (s *Service) attempt(ctx context.Context, a domain.Auction, b domain.Bid, l *lease) domain.CandidateResult {
	if res, ok := s.step(ctx, l); !ok {
		return res
	}
	state, err := s.instrumentState(ctx, b.InstrumentID)
	switch {
	case err == nil:
	case rejected(err):
		return domain.CandidateResult{Kind: domain.CandidateInstrumentFailure, Reason: "instrument status: " + err.Error()}
	default:
		return indeterminate("instrument status", err)
	}

	switch state {
	case ports.InstrumentCashed:
		// collected by an earlier, interrupted pass
		log.Infow("instrument already cashed", "auction", a.ID, "bid", b.ID, "instrument", b.InstrumentID)
	case ports.InstrumentOpen:
		if res, ok := s.step(ctx, l); !ok {
			return res
		}
		if res, ok := s.checkCustody(ctx, a, b); !ok {
			return res
		}
		if res, ok := s.step(ctx, l); !ok {
			return res
		}
		if res, ok := s.checkBalance(ctx, b); !ok {
			return res
		}
		if res, ok := s.step(ctx, l); !ok {
			return res
		}
		if res, ok := s.collect(ctx, b); !ok {
			return res
		}
	default:
		return domain.CandidateResult{Kind: domain.CandidateInstrumentFailure, Reason: "instrument is " + string(state)}
	}

	if res, ok := s.step(ctx, l); !ok {
		return res
	}
	return s.deliver(ctx, a, b, l)
}

// checkCustody confirms the claim can still be delivered before any money
// moves.
func (s *Service) checkCustody(ctx context.Context, a domain.Auction, b domain.Bid) (domain.CandidateResult, bool) {
	owner, err := s.ownerOf(ctx, a.ClaimID)
	switch {
	case err == nil:
	case rejected(err):
		return domain.CandidateResult{Kind: domain.CandidateCustodyLost, Reason: "claim owner: " + err.Error()}, false
	default:
		return indeterminate("owner", err), false
	}
	if owner != s.custodian(a) && owner != b.Bidder {
		return domain.CandidateResult{
			Kind:   domain.CandidateCustodyLost,
			Reason: fmt.Sprintf("claim %s held by %s, expected %s", a.ClaimID, owner, s.custodian(a)),
		}, false
	}
	return domain.CandidateResult{}, true
}

func (s *Service) checkBalance(ctx context.Context, b domain.Bid) (domain.CandidateResult, bool) {
	var bal decimal.Decimal
	err := s.reconcile(ctx, func(ctx context.Context) error {
		var err error
		bal, err = s.ledger.Balance(ctx, b.Bidder, s.cfg.Currency)
		return err
	})
	switch {
	case err == nil:
	case rejected(err):
		return domain.CandidateResult{Kind: domain.CandidateInsufficientBalance, Reason: err.Error()}, false
	default:
		return indeterminate("balance", err), false
	}
	if bal.LessThan(b.Amount) {
		return domain.CandidateResult{
			Kind:   domain.CandidateInsufficientBalance,
			Reason: fmt.Sprintf("balance %s below bid %s", bal, b.Amount),
		}, false
	}
	return domain.CandidateResult{}, true
}

func (s *Service) collect(ctx context.Context, b domain.Bid) (domain.CandidateResult, bool) {
	_, err := s.ledger.CashInstrument(ctx, b.InstrumentID, b.Amount)
	if err == nil {
		return domain.CandidateResult{}, true
	}
	if rejected(err) {
		return domain.CandidateResult{Kind: domain.CandidateInstrumentFailure, Reason: err.Error()}, false
	}

	log.Warnw("cash outcome unknown, reconciling", "bid", b.ID, "instrument", b.InstrumentID, "err", err)
	var state ports.InstrumentState
	rerr := s.reconcile(ctx, func(ctx context.Context) error {
		var err error
		state, err = s.ledger.InstrumentStatus(ctx, b.InstrumentID)
		if err != nil {
			return err
		}
		if state == ports.InstrumentOpen {
			return errPending
		}
		return nil
	})
	switch {
	case rerr != nil:
		return indeterminate("cash", err), false
	case state == ports.InstrumentCashed:
		return domain.CandidateResult{}, true
	default:
		return domain.CandidateResult{Kind: domain.CandidateInstrumentFailure, Reason: "instrument is " + string(state)}, false
	}
}

func (s *Service) deliver(ctx context.Context, a domain.Auction, b domain.Bid, l *lease) domain.CandidateResult {
	from := s.custodian(a)
	owner, err := s.ownerOf(ctx, a.ClaimID)
	if err != nil {
		if rejected(err) {
			return domain.CandidateResult{Kind: domain.CandidateCustodyLost, Reason: "claim owner: " + err.Error()}
		}
		return indeterminate("owner", err)
	}
	if owner == b.Bidder {
		return domain.CandidateResult{Kind: domain.CandidateSuccess}
	}
	if owner != from {
		return domain.CandidateResult{Kind: domain.CandidateCustodyLost, Reason: fmt.Sprintf("claim %s held by %s, expected %s", a.ClaimID, owner, from)}
	}

	if res, ok := s.step(ctx, l); !ok {
		return res
	}
	if err := s.moveClaim(ctx, a.ClaimID, from, b.Bidder); err != nil {
		if rejected(err) {
			return domain.CandidateResult{Kind: domain.CandidateTransferFailure, Reason: err.Error()}
		}
		return indeterminate("transfer", err)
	}
	return domain.CandidateResult{Kind: domain.CandidateSuccess}
}

// moveClaim transfers the claim token and, when the result is unknown, polls
// the owner until it is either the recipient or the call is given up on.
func (s *Service) moveClaim(ctx context.Context, claimID, from, to string) error {
	_, err := s.ledger.TransferOwnership(ctx, claimID, from, to)
	if err == nil || rejected(err) {
		return err
	}
	log.Warnw("transfer outcome unknown, reconciling", "claim", claimID, "to", to, "err", err)
	return s.reconcile(ctx, func(ctx context.Context) error {
		owner, err := s.ledger.OwnerOf(ctx, claimID)
		if err != nil {
			return err
		}
		if owner != to {
			return errPending
		}
		return nil
	})
}

func (s *Service) instrumentState(ctx context.Context, id string) (ports.InstrumentState, error) {
	var state ports.InstrumentState
	err := s.reconcile(ctx, func(ctx context.Context) error {
		var err error
		state, err = s.ledger.InstrumentStatus(ctx, id)
		return err
	})
	return state, err
}

func (s *Service) ownerOf(ctx context.Context, assetID string) (string, error) {
	var owner string
	err := s.reconcile(ctx, func(ctx context.Context) error {
		var err error
		owner, err = s.ledger.OwnerOf(ctx, assetID)
		return err
	})
	return owner, err
}

// reconcile retries fn while the ledger answer is indeterminate or pending.
// Confirmed rejections stop immediately.
func (s *Service) reconcile(ctx context.Context, fn func(context.Context) error) error {
	b := retry.WithMaxRetries(uint64(s.cfg.ReconcileAttempts), retry.NewConstant(s.cfg.ReconcileDelay))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil || rejected(err) {
			return err
		}
		return retry.RetryableError(err)
	})
}

func indeterminate(step string, err error) domain.CandidateResult {
	return domain.CandidateResult{Kind: domain.CandidateIndeterminate, Reason: step + ": " + err.Error()}
}

func (s *Service) reject(ctx context.Context, a domain.Auction, b domain.Bid, res domain.CandidateResult) error {
	now := s.clock.Now()
	if _, err := s.repo.RejectBid(ctx, b.ID, res.RejectReason(), now); err != nil {
		return fmt.Errorf("reject bid %s: %w", b.ID, err)
	}
	log.Infow("candidate failed", "auction", a.ID, "bid", b.ID, "bidder", b.Bidder, "reason", res.RejectReason())

	if res.Kind == domain.CandidateTransferFailure {
		if state, err := s.ledger.InstrumentStatus(ctx, b.InstrumentID); err == nil && state == ports.InstrumentCashed {
			log.Errorw("payment collected but claim not delivered; refund required", "auction", a.ID, "bid", b.ID, "bidder", b.Bidder, "amount", b.Amount.String())
		}
	}
	if _, err := s.ledger.CancelInstrument(ctx, b.InstrumentID); err != nil {
		log.Warnw("cancel instrument", "bid", b.ID, "instrument", b.InstrumentID, "err", err)
	}
	s.emit(ctx, ports.EventBidRejected, b.ID, map[string]any{
		"auction_id": a.ID,
		"bidder":     b.Bidder,
		"amount":     b.Amount.String(),
		"reason":     res.RejectReason(),
	})
	return nil
}

func (s *Service) complete(ctx context.Context, a domain.Auction, b domain.Bid) (domain.FinalizeResult, error) {
	now := s.clock.Now()
	ok, err := s.repo.CompleteAuction(ctx, ports.AuctionSettlement{
		AuctionID: a.ID,
		ClaimID:   a.ClaimID,
		BidID:     b.ID,
		Winner:    b.Bidder,
		Price:     b.Amount,
		SettledAt: now,
	})
	if err != nil {
		// ledger side is done; the next pass sees the cashed instrument and
		// the new owner and only has to commit
		return errorResult(a.ID, err), fmt.Errorf("complete auction: %w", err)
	}
	if !ok {
		cur, err := s.repo.GetAuction(ctx, a.ID)
		if err != nil {
			return errorResult(a.ID, err), err
		}
		return domain.RecordedResult(cur), nil
	}
	log.Infow("auction completed", "auction", a.ID, "winner", b.Bidder, "price", b.Amount.String())
	s.emit(ctx, ports.EventAuctionCompleted, a.ID, map[string]any{
		"claim_id": a.ClaimID,
		"winner":   b.Bidder,
		"price":    b.Amount.String(),
	})
	return domain.FinalizeResult{
		AuctionID: a.ID,
		Outcome:   domain.OutcomeCompleted,
		Detail:    "settled to highest solvent bidder",
		Winner:    b.Bidder,
		Price:     b.Amount,
		SettledAt: &now,
	}, nil
}

// unlist returns custody to the original owner and closes the auction.
func (s *Service) unlist(ctx context.Context, a domain.Auction, l *lease, detail string) (domain.FinalizeResult, error) {
	if a.Custody {
		if res, ok := s.step(ctx, l); !ok {
			return domain.FinalizeResult{AuctionID: a.ID, Outcome: domain.OutcomeDeferred, Detail: res.Reason}, nil
		}
		if err := s.returnCustody(ctx, a, l); err != nil {
			if rejected(err) {
				log.Errorw("custody return failed", "auction", a.ID, "claim", a.ClaimID, "err", err)
				return errorResult(a.ID, err), err
			}
			return domain.FinalizeResult{AuctionID: a.ID, Outcome: domain.OutcomeDeferred, Detail: "custody return: " + err.Error()}, nil
		}
	}
	now := s.clock.Now()
	ok, err := s.repo.UnlistAuction(ctx, a.ID, now)
	if err != nil {
		return errorResult(a.ID, err), fmt.Errorf("unlist auction: %w", err)
	}
	if !ok {
		cur, err := s.repo.GetAuction(ctx, a.ID)
		if err != nil {
			return errorResult(a.ID, err), err
		}
		return domain.RecordedResult(cur), nil
	}
	log.Infow("auction unlisted", "auction", a.ID, "claim", a.ClaimID, "detail", detail)
	s.emit(ctx, ports.EventAuctionUnlisted, a.ID, map[string]any{
		"claim_id": a.ClaimID,
		"owner":    a.OriginalOwner,
		"detail":   detail,
	})
	return domain.FinalizeResult{AuctionID: a.ID, Outcome: domain.OutcomeUnlisted, Detail: detail, SettledAt: &now}, nil
}

func (s *Service) returnCustody(ctx context.Context, a domain.Auction, l *lease) error {
	owner, err := s.ownerOf(ctx, a.ClaimID)
	if err != nil {
		return err
	}
	if owner == a.OriginalOwner {
		return nil
	}
	if owner != s.cfg.PlatformAccount {
		return fmt.Errorf("%w: claim %s held by %s", domain.ErrRejected, a.ClaimID, owner)
	}
	if res, ok := s.step(ctx, l); !ok {
		return fmt.Errorf("%w: %s", domain.ErrIndeterminate, res.Reason)
	}
	return s.moveClaim(ctx, a.ClaimID, s.cfg.PlatformAccount, a.OriginalOwner)
}
