package nats

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receivables/internal/ports"
)

func TestPublishUsesEventTypeAsSubject(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if os.Getenv("RECEIVABLES_INTEGRATION") != "1" || url == "" {
		t.Skip("set RECEIVABLES_INTEGRATION=1 and NATS_URL to run nats tests")
	}
	sub, err := nats.Connect(url)
	require.NoError(t, err)
	defer sub.Close()
	msgs := make(chan *nats.Msg, 1)
	s, err := sub.ChanSubscribe(ports.EventAuctionCompleted, msgs)
	require.NoError(t, err)
	defer func() { _ = s.Unsubscribe() }()
	require.NoError(t, sub.Flush())

	p, err := Connect(Config{URL: url, Name: "receivables-test"})
	require.NoError(t, err)
	defer p.Close()

	at := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	require.NoError(t, p.Publish(context.Background(), ports.Event{
		Type:     ports.EventAuctionCompleted,
		EntityID: "auction-1",
		At:       at,
		Data:     map[string]any{"winner": "alice"},
	}))

	select {
	case m := <-msgs:
		var got ports.Event
		require.NoError(t, json.Unmarshal(m.Data, &got))
		assert.Equal(t, "auction-1", got.EntityID)
		assert.Equal(t, "alice", got.Data["winner"])
		assert.True(t, got.At.Equal(at))
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestPublishHonoursCancelledContext(t *testing.T) {
	p := &Publisher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Publish(ctx, ports.Event{Type: ports.EventAuctionCompleted})
	require.ErrorIs(t, err, context.Canceled)
}
