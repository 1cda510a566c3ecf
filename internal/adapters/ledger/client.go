package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"receivables/internal/domain"
	"receivables/internal/ports"
)

// Client talks to a ledger bridge over JSON/HTTP. Confirmed failures (4xx)
// wrap domain.ErrRejected; everything else that fails wraps
// domain.ErrIndeterminate because the ledger may still have executed it.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Bearer     string
}

var _ ports.LedgerGateway = (*Client)(nil)

func NewClient(baseURL, bearer string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Bearer:     bearer,
	}
}

type balanceResponse struct {
	Account  string          `json:"account"`
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

type createInstrumentRequest struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type instrumentResponse struct {
	InstrumentID string `json:"instrument_id"`
	Confirmation string `json:"confirmation"`
	State        string `json:"state,omitempty"`
}

type cashRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type transferRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type receiptResponse struct {
	Result       string `json:"result"`
	Confirmation string `json:"confirmation"`
}

type ownerResponse struct {
	AssetID string `json:"asset_id"`
	Owner   string `json:"owner"`
}

func (c *Client) Balance(ctx context.Context, account, currency string) (decimal.Decimal, error) {
	u := fmt.Sprintf("%s/accounts/%s/balances/%s", c.BaseURL, url.PathEscape(account), url.PathEscape(currency))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return decimal.Zero, err
	}
	out, err := doJSON[balanceResponse](c, req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("balance %s: %w", account, err)
	}
	return out.Amount, nil
}

func (c *Client) CreateInstrument(ctx context.Context, from, to string, amount decimal.Decimal) (ports.Instrument, error) {
	req, err := c.post(ctx, "/instruments", createInstrumentRequest{From: from, To: to, Amount: amount})
	if err != nil {
		return ports.Instrument{}, err
	}
	out, err := doJSON[instrumentResponse](c, req)
	if err != nil {
		return ports.Instrument{}, fmt.Errorf("create instrument: %w", err)
	}
	return ports.Instrument{ID: out.InstrumentID, Confirmation: out.Confirmation}, nil
}

func (c *Client) CashInstrument(ctx context.Context, instrumentID string, amount decimal.Decimal) (ports.Receipt, error) {
	req, err := c.post(ctx, "/instruments/"+url.PathEscape(instrumentID)+"/cash", cashRequest{Amount: amount})
	if err != nil {
		return ports.Receipt{}, err
	}
	return c.receipt(req, "cash instrument "+instrumentID)
}

func (c *Client) CancelInstrument(ctx context.Context, instrumentID string) (ports.Receipt, error) {
	req, err := c.post(ctx, "/instruments/"+url.PathEscape(instrumentID)+"/cancel", struct{}{})
	if err != nil {
		return ports.Receipt{}, err
	}
	return c.receipt(req, "cancel instrument "+instrumentID)
}

func (c *Client) TransferOwnership(ctx context.Context, assetID, from, to string) (ports.Receipt, error) {
	req, err := c.post(ctx, "/assets/"+url.PathEscape(assetID)+"/transfer", transferRequest{From: from, To: to})
	if err != nil {
		return ports.Receipt{}, err
	}
	return c.receipt(req, "transfer "+assetID)
}

func (c *Client) InstrumentStatus(ctx context.Context, instrumentID string) (ports.InstrumentState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/instruments/"+url.PathEscape(instrumentID), nil)
	if err != nil {
		return ports.InstrumentUnknown, err
	}
	out, err := doJSON[instrumentResponse](c, req)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			return ports.InstrumentUnknown, nil
		}
		return ports.InstrumentUnknown, fmt.Errorf("instrument status %s: %w", instrumentID, err)
	}
	switch s := ports.InstrumentState(out.State); s {
	case ports.InstrumentOpen, ports.InstrumentCashed, ports.InstrumentCancelled:
		return s, nil
	default:
		return ports.InstrumentUnknown, nil
	}
}

func (c *Client) OwnerOf(ctx context.Context, assetID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/assets/"+url.PathEscape(assetID)+"/owner", nil)
	if err != nil {
		return "", err
	}
	out, err := doJSON[ownerResponse](c, req)
	if err != nil {
		return "", fmt.Errorf("owner of %s: %w", assetID, err)
	}
	return out.Owner, nil
}

func (c *Client) post(ctx context.Context, path string, in any) (*http.Request, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// receipt decodes a transaction result. The bridge reports ledger-level
// failures as 200 with a non-success result code.
func (c *Client) receipt(req *http.Request, what string) (ports.Receipt, error) {
	out, err := doJSON[receiptResponse](c, req)
	if err != nil {
		return ports.Receipt{}, fmt.Errorf("%s: %w", what, err)
	}
	if out.Result != "" && out.Result != "success" {
		return ports.Receipt{}, fmt.Errorf("%s: %w: result %s", what, domain.ErrRejected, out.Result)
	}
	return ports.Receipt{Confirmation: out.Confirmation}, nil
}

type statusError struct {
	code int
	body map[string]any
}

func (e *statusError) Error() string { return fmt.Sprintf("http %d: %v", e.code, e.body) }

func doJSON[T any](c *Client, req *http.Request) (*T, error) {
	if c.Bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.Bearer)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var errBody map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		se := &statusError{code: resp.StatusCode, body: errBody}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, fmt.Errorf("%w: %w", domain.ErrRejected, se)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrIndeterminate, se)
	}
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		// the call went through but we could not read the result
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrIndeterminate, err)
	}
	return &out, nil
}

func classify(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrIndeterminate, err)
}
