package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"receivables/internal/domain"
	"receivables/internal/ports"
)

// Store is an in-process ports.Store and ports.Leaser. It backs unit tests and
// development mode; every method takes the single mutex so each call behaves
// like one serializable transaction.
type Store struct {
	mu       sync.Mutex
	claims   map[string]domain.Claim
	auctions map[string]domain.Auction
	bids     map[string]domain.Bid
	payments map[string]domain.MaturityPayment
	leases   map[string]lease
	now      func() time.Time
}

type lease struct {
	owner     string
	expiresAt time.Time
}

var _ ports.Store = (*Store)(nil)
var _ ports.Leaser = (*Store)(nil)

func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		claims:   map[string]domain.Claim{},
		auctions: map[string]domain.Auction{},
		bids:     map[string]domain.Bid{},
		payments: map[string]domain.MaturityPayment{},
		leases:   map[string]lease{},
		now:      now,
	}
}

// Claims

func (s *Store) GetClaim(ctx context.Context, id string) (domain.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.claims[id]
	if !ok {
		return domain.Claim{}, domain.ErrNotFound
	}
	return c, nil
}

func (s *Store) InsertClaim(ctx context.Context, c domain.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, ok := s.claims[c.ID]; ok {
		return domain.ErrConflict
	}
	s.claims[c.ID] = c
	return nil
}

func (s *Store) ListMaturedClaims(ctx context.Context, asOf time.Time, limit int) ([]domain.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	paid := map[string]bool{}
	for _, p := range s.payments {
		paid[p.ClaimID] = true
	}
	var out []domain.Claim
	for _, c := range s.claims {
		if c.Status != domain.ClaimOwned || c.MaturityAt.After(asOf) || paid[c.ID] {
			continue
		}
		out = append(out, c)
	}
	sortByMaturity(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Auctions

func (s *Store) GetAuction(ctx context.Context, id string) (domain.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auctions[id]
	if !ok {
		return domain.Auction{}, domain.ErrNotFound
	}
	return a, nil
}

func (s *Store) CreateAuction(ctx context.Context, a domain.Auction, custodian string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.claims[a.ClaimID]
	if !ok {
		return domain.ErrNotFound
	}
	if c.Status != domain.ClaimOwned || c.Holder != a.OriginalOwner {
		return domain.ErrInvalidTransition
	}
	if _, ok := s.auctions[a.ID]; ok {
		return domain.ErrConflict
	}
	c.Status = domain.ClaimListed
	c.Holder = custodian
	c.UpdatedAt = a.CreatedAt
	s.claims[c.ID] = c
	s.auctions[a.ID] = a
	return nil
}

func (s *Store) ListExpiredAuctions(ctx context.Context, asOf time.Time, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var expired []domain.Auction
	for _, a := range s.auctions {
		if a.Status == domain.AuctionActive && a.Expired(asOf) {
			expired = append(expired, a)
		}
	}
	sortByExpiry(expired)
	if limit > 0 && len(expired) > limit {
		expired = expired[:limit]
	}
	ids := make([]string, 0, len(expired))
	for _, a := range expired {
		ids = append(ids, a.ID)
	}
	return ids, nil
}

func (s *Store) CompleteAuction(ctx context.Context, st ports.AuctionSettlement) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auctions[st.AuctionID]
	if !ok {
		return false, domain.ErrNotFound
	}
	if a.Status != domain.AuctionActive {
		return false, nil
	}
	b, ok := s.bids[st.BidID]
	if !ok || b.AuctionID != a.ID || b.Status != domain.BidActive {
		return false, domain.ErrInvalidTransition
	}
	c, ok := s.claims[a.ClaimID]
	if !ok {
		return false, domain.ErrNotFound
	}

	winner, price, at := st.Winner, st.Price, st.SettledAt
	a.Status = domain.AuctionCompleted
	a.Winner = &winner
	a.FinalPrice = &price
	a.CurrentBid = price
	a.SettledAt = &at
	s.auctions[a.ID] = a

	b.Status = domain.BidCashed
	b.UpdatedAt = at
	s.bids[b.ID] = b

	if c.Status == domain.ClaimListed {
		c.Status = domain.ClaimOwned
	}
	c.Holder = winner
	c.UpdatedAt = at
	s.claims[c.ID] = c
	return true, nil
}

func (s *Store) UnlistAuction(ctx context.Context, auctionID string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auctions[auctionID]
	if !ok {
		return false, domain.ErrNotFound
	}
	if a.Status != domain.AuctionActive {
		return false, nil
	}
	a.Status = domain.AuctionUnlisted
	a.SettledAt = &at
	s.auctions[a.ID] = a

	if c, ok := s.claims[a.ClaimID]; ok {
		if c.Status == domain.ClaimListed {
			c.Status = domain.ClaimOwned
		}
		c.Holder = a.OriginalOwner
		c.UpdatedAt = at
		s.claims[c.ID] = c
	}
	return true, nil
}

// Bids

func (s *Store) PlaceBid(ctx context.Context, b domain.Bid, now time.Time) (domain.Bid, *domain.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auctions[b.AuctionID]
	if !ok {
		return domain.Bid{}, nil, domain.ErrNotFound
	}
	active := s.activeLocked(a.ID)
	if err := domain.CheckBid(a, len(active) > 0, b.Amount, now); err != nil {
		return domain.Bid{}, nil, err
	}

	var superseded *domain.Bid
	for _, prior := range active {
		if prior.Bidder != b.Bidder {
			continue
		}
		prior.Status = domain.BidSuperseded
		prior.Reason = domain.ReasonRebid
		prior.UpdatedAt = now
		s.bids[prior.ID] = prior
		p := prior
		superseded = &p
	}

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.Status = domain.BidActive
	b.CreatedAt = now
	b.UpdatedAt = now
	s.bids[b.ID] = b

	a.CurrentBid = domain.LeadingBid(a.MinBid, s.activeLocked(a.ID))
	s.auctions[a.ID] = a
	return b, superseded, nil
}

func (s *Store) ActiveBids(ctx context.Context, auctionID string) ([]domain.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocked(auctionID), nil
}

func (s *Store) RejectBid(ctx context.Context, bidID string, reason string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bids[bidID]
	if !ok {
		return false, domain.ErrNotFound
	}
	if b.Status != domain.BidActive {
		return false, nil
	}
	b.Status = domain.BidSuperseded
	b.Reason = reason
	b.UpdatedAt = at
	s.bids[b.ID] = b
	if a, ok := s.auctions[b.AuctionID]; ok && a.Status == domain.AuctionActive {
		a.CurrentBid = domain.LeadingBid(a.MinBid, s.activeLocked(a.ID))
		s.auctions[a.ID] = a
	}
	return true, nil
}

// Bid returns any bid by id regardless of status.
func (s *Store) Bid(id string) (domain.Bid, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bids[id]
	return b, ok
}

func (s *Store) activeLocked(auctionID string) []domain.Bid {
	var out []domain.Bid
	for _, b := range s.bids {
		if b.AuctionID == auctionID && b.Status == domain.BidActive {
			out = append(out, b)
		}
	}
	domain.SortBids(out)
	return out
}

// Maturity payments

func (s *Store) CreateMaturityPayment(ctx context.Context, p domain.MaturityPayment) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.payments {
		if existing.ClaimID == p.ClaimID {
			return false, nil
		}
	}
	c, ok := s.claims[p.ClaimID]
	if !ok {
		return false, domain.ErrNotFound
	}
	if c.Status != domain.ClaimOwned {
		return false, nil
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.payments[p.ID] = p
	c.Status = domain.ClaimMatured
	c.UpdatedAt = p.CreatedAt
	s.claims[c.ID] = c
	return true, nil
}

func (s *Store) GetPayment(ctx context.Context, id string) (domain.MaturityPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return domain.MaturityPayment{}, domain.ErrNotFound
	}
	return p, nil
}

// PaymentForClaim returns the payment for a claim, if any.
func (s *Store) PaymentForClaim(claimID string) (domain.MaturityPayment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.ClaimID == claimID {
			return p, true
		}
	}
	return domain.MaturityPayment{}, false
}

func (s *Store) SetInstrument(ctx context.Context, id string, from, to domain.PaymentStatus, instrumentID, confirmation string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if p.Status != from {
		return false, nil
	}
	p.Status = to
	p.InstrumentID = &instrumentID
	p.Confirmation = &confirmation
	p.UpdatedAt = at
	s.payments[id] = p
	return true, nil
}

func (s *Store) MarkPaymentCashed(ctx context.Context, id string, from domain.PaymentStatus, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if p.Status != from {
		return false, nil
	}
	p.Status = domain.PaymentCashed
	p.UpdatedAt = at
	s.payments[id] = p
	if c, ok := s.claims[p.ClaimID]; ok && c.Status == domain.ClaimMatured {
		c.Status = domain.ClaimRedeemed
		c.UpdatedAt = at
		s.claims[c.ID] = c
	}
	return true, nil
}

func (s *Store) MarkOverdue(ctx context.Context, now time.Time, grace time.Duration) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, p := range s.payments {
		if p.Status != domain.PaymentPending && p.Status != domain.PaymentCreated {
			continue
		}
		if !p.DueBy(now, grace) {
			continue
		}
		p.Status = domain.PaymentOverdue
		p.UpdatedAt = now
		s.payments[id] = p
		ids = append(ids, id)
	}
	return ids, nil
}

// Leases

func (s *Store) AcquireLease(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if l, ok := s.leases[key]; ok && l.owner != owner && now.Before(l.expiresAt) {
		return false, nil
	}
	s.leases[key] = lease{owner: owner, expiresAt: now.Add(ttl)}
	return true, nil
}

func (s *Store) ReleaseLease(ctx context.Context, key, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.leases[key]; ok && l.owner == owner {
		delete(s.leases, key)
	}
	return nil
}
