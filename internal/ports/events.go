package ports

import (
	"context"
	"time"
)

const (
	EventAuctionCompleted = "receivables.auction.completed"
	EventAuctionUnlisted  = "receivables.auction.unlisted"
	EventBidRejected      = "receivables.bid.rejected"
	EventMaturityCreated  = "receivables.maturity.created"
	EventMaturityCashed   = "receivables.maturity.cashed"
	EventMaturityOverdue  = "receivables.maturity.overdue"
)

type Event struct {
	Type     string         `json:"type"`
	EntityID string         `json:"entity_id"`
	At       time.Time      `json:"at"`
	Data     map[string]any `json:"data,omitempty"`
}

// EventPublisher emits settlement events. Publishing is best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
