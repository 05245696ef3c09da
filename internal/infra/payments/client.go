package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"

	"github.com/sony/gobreaker/v2"
)

var (
	// プロバイダ側の障害（5xx・通信エラー・ブレーカー open）
	ErrUpstream = errors.New("payments provider unavailable")
	// 依頼内容を拒否された（4xx）
	ErrRejected = errors.New("payments provider rejected request")
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// ホスト型決済のHTTPクライアント。
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[model.CheckoutResult]
}

func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	cb := gobreaker.NewCircuitBreaker[model.CheckoutResult](gobreaker.Settings{
		Name:        "payments",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		//4xxと呼び出し側のキャンセルはプロバイダ障害ではない
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrRejected) || errors.Is(err, context.Canceled)
		},
	})

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpClient,
		cb:      cb,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// POST {baseURL}/checkout
func (c *Client) CreateCheckout(ctx context.Context, req model.CheckoutRequest) (model.CheckoutResult, error) {
	res, err := c.cb.Execute(func() (model.CheckoutResult, error) {
		return c.post(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return model.CheckoutResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return res, err
}

func (c *Client) post(ctx context.Context, req model.CheckoutRequest) (model.CheckoutResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return model.CheckoutResult{}, fmt.Errorf("marshal checkout failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout", bytes.NewReader(body))
	if err != nil {
		return model.CheckoutResult{}, fmt.Errorf("build request failed: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return model.CheckoutResult{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.CheckoutResult{}, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}

	switch {
	case resp.StatusCode >= 500:
		return model.CheckoutResult{}, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	case resp.StatusCode >= 400:
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		return model.CheckoutResult{}, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, eb.Error)
	}

	var out model.CheckoutResult
	if err := json.Unmarshal(data, &out); err != nil {
		return model.CheckoutResult{}, fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	if out.RedirectURL == "" {
		return model.CheckoutResult{}, fmt.Errorf("%w: empty redirect url", ErrUpstream)
	}
	return out, nil
}
