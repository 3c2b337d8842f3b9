package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amirasaad/moneyrates/pkg/config"
	"github.com/amirasaad/moneyrates/pkg/domain"
	"github.com/amirasaad/moneyrates/pkg/metrics"
	"github.com/amirasaad/moneyrates/pkg/provider"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	endpointSymbols = "symbols"
	endpointConvert = "convert"
)

// ExchangeRateHostClient implements provider.RateClient for api.exchangerate.host
type ExchangeRateHostClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewExchangeRateHostClient creates a client from config. A zero
// RequestsPerMinute disables throttling.
func NewExchangeRateHostClient(
	cfg *config.ExchangeRateApi,
	m *metrics.Metrics,
	logger *slog.Logger,
) *ExchangeRateHostClient {
	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}
	burst := cfg.BurstSize
	if burst < 1 {
		burst = 1
	}
	return &ExchangeRateHostClient{
		apiKey:     cfg.ApiKey,
		baseURL:    strings.TrimRight(cfg.ApiUrl, "/"),
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		limiter:    rate.NewLimiter(limit, burst),
		metrics:    m,
		logger:     logger.With("provider", "exchangerate.host"),
	}
}

// FetchSymbols implements provider.RateClient.
func (c *ExchangeRateHostClient) FetchSymbols(ctx context.Context) ([]domain.Symbol, error) {
	body, err := c.get(ctx, endpointSymbols, nil)
	if err != nil {
		return nil, err
	}
	if err = checkPayload(body); err != nil {
		return nil, err
	}

	node := gjson.GetBytes(body, "symbols")
	if !node.Exists() || !node.IsObject() {
		return nil, fmt.Errorf("%w: no symbols object", domain.ErrMalformedResponse)
	}

	var symbols []domain.Symbol
	node.ForEach(func(key, value gjson.Result) bool {
		desc := value.Get("description")
		if desc.Type != gjson.String {
			c.logger.Debug("Skipping symbol entry without description", "key", key.String())
			return true
		}
		code := key.String()
		if v := value.Get("code"); v.Type == gjson.String && v.String() != "" {
			code = v.String()
		}
		symbols = append(symbols, domain.Symbol{Code: code, Description: desc.String()})
		return true
	})
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: no symbols", domain.ErrEmptyResponse)
	}

	c.logger.Info("Fetched symbols", "count", len(symbols))
	return symbols, nil
}

// Convert implements provider.RateClient.
func (c *ExchangeRateHostClient) Convert(
	ctx context.Context,
	from, to string,
	amount decimal.Decimal,
) (float64, error) {
	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)
	query.Set("amount", amount.String())

	body, err := c.get(ctx, endpointConvert, query)
	if err != nil {
		return 0, err
	}
	if err = checkPayload(body); err != nil {
		return 0, err
	}

	result := gjson.GetBytes(body, "result")
	if result.Type != gjson.Number {
		return 0, fmt.Errorf("%w: result is not a number", domain.ErrMalformedResponse)
	}

	c.logger.Debug("Converted", "from", from, "to", to, "amount", amount.String(), "result", result.Float())
	return result.Float(), nil
}

// Name implements provider.RateClient.
func (c *ExchangeRateHostClient) Name() string {
	return "exchangerate.host"
}

func (c *ExchangeRateHostClient) get(ctx context.Context, endpoint string, query url.Values) (body []byte, err error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveUpstream(endpoint, outcomeOf(err), time.Since(start))
	}()

	if err = c.limiter.Wait(ctx); err != nil {
		return nil, &domain.NetworkError{Op: endpoint, Err: err}
	}

	if query == nil {
		query = url.Values{}
	}
	if c.apiKey != "" {
		query.Set("access_key", c.apiKey)
	}
	u := c.baseURL + "/" + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &domain.NetworkError{Op: endpoint, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Op: endpoint, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("API returned non-2xx status", "endpoint", endpoint, "status", resp.StatusCode)
		return nil, &domain.NetworkError{
			Op:  endpoint,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Op: endpoint, Err: err}
	}
	return body, nil
}

func checkPayload(body []byte) error {
	if len(strings.TrimSpace(string(body))) == 0 {
		return domain.ErrEmptyResponse
	}
	if !gjson.ValidBytes(body) {
		return fmt.Errorf("%w: invalid json", domain.ErrMalformedResponse)
	}
	if ok := gjson.GetBytes(body, "success"); ok.Exists() && ok.Type == gjson.False {
		return fmt.Errorf("%w: %s", domain.ErrMalformedResponse, gjson.GetBytes(body, "error.info").String())
	}
	return nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, domain.ErrNetwork):
		return "network_error"
	default:
		return "error"
	}
}

var _ provider.RateClient = (*ExchangeRateHostClient)(nil)
