package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receivables/internal/domain"
	"receivables/internal/ports"
)

func newBridge(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "secret", 2*time.Second)
}

func TestClientBalance(t *testing.T) {
	c := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "/accounts/alice/balances/USD", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"account": "alice", "currency": "USD", "amount": "1250.50"})
	})
	bal, err := c.Balance(context.Background(), "alice", "USD")
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.RequireFromString("1250.50")))
}

func TestClientStatusClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"client error is rejected", http.StatusConflict, domain.ErrRejected},
		{"server error is indeterminate", http.StatusBadGateway, domain.ErrIndeterminate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"error":"nope"}`))
			})
			_, err := c.CashInstrument(context.Background(), "inst-1", decimal.NewFromInt(5))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestClientReceiptResultCode(t *testing.T) {
	c := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/assets/claim-1/transfer", r.URL.Path)
		var body transferRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.To == "bob" {
			_ = json.NewEncoder(w).Encode(receiptResponse{Result: "tecNO_PERMISSION"})
			return
		}
		_ = json.NewEncoder(w).Encode(receiptResponse{Result: "success", Confirmation: "abc"})
	})
	rc, err := c.TransferOwnership(context.Background(), "claim-1", "seller", "alice")
	require.NoError(t, err)
	assert.Equal(t, "abc", rc.Confirmation)

	_, err = c.TransferOwnership(context.Background(), "claim-1", "seller", "bob")
	require.ErrorIs(t, err, domain.ErrRejected)
}

func TestClientInstrumentStatus(t *testing.T) {
	c := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/instruments/open-1":
			_ = json.NewEncoder(w).Encode(instrumentResponse{InstrumentID: "open-1", State: "open"})
		case "/instruments/odd-1":
			_ = json.NewEncoder(w).Encode(instrumentResponse{InstrumentID: "odd-1", State: "frozen"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	s, err := c.InstrumentStatus(ctx, "open-1")
	require.NoError(t, err)
	assert.Equal(t, ports.InstrumentOpen, s)

	s, err = c.InstrumentStatus(ctx, "odd-1")
	require.NoError(t, err)
	assert.Equal(t, ports.InstrumentUnknown, s)

	s, err = c.InstrumentStatus(ctx, "gone")
	require.NoError(t, err)
	assert.Equal(t, ports.InstrumentUnknown, s)
}

func TestClientUnreachableIsIndeterminate(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, "", time.Second)
	_, err := c.OwnerOf(context.Background(), "claim-1")
	require.ErrorIs(t, err, domain.ErrIndeterminate)
}

func TestBoundedDeadlineIsIndeterminate(t *testing.T) {
	release := make(chan struct{})
	c := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	g := WithTimeout(c, 50*time.Millisecond)
	_, err := g.CashInstrument(context.Background(), "inst-1", decimal.NewFromInt(1))
	require.ErrorIs(t, err, domain.ErrIndeterminate)
	assert.NotErrorIs(t, err, domain.ErrRejected)
}
