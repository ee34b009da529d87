package abstract

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"mndotbids/internal"
	"mndotbids/internal/config"
)

// Client retrieves raw bid abstracts from the letting results host.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *RateLimiter
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		baseURL:    cfg.AbstractBaseURL,
		httpClient: &http.Client{Timeout: time.Duration(cfg.AbstractTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.AbstractRateLimitPS),
	}
}

// Fetch downloads the raw abstract text for one contract id and splits
// it into its three segments.
func (c *Client) Fetch(ctx context.Context, contractID int) (internal.RawAbstract, error) {
	text, err := c.fetchText(ctx, contractID)
	if err != nil {
		return internal.RawAbstract{}, err
	}
	return Split(contractID, text)
}

func (c *Client) fetchText(ctx context.Context, contractID int) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("ContractId", strconv.Itoa(contractID))
	u.RawQuery = q.Encode()

	var lastErr error
	for attempt := 1; attempt <= 5; attempt++ {
		c.limiter.WaitTurn()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return "", err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = &internal.RetrievalError{ContractID: contractID, Err: err}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = &internal.RetrievalError{ContractID: contractID, Err: readErr}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < 5 {
				backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
				time.Sleep(backoff)
				lastErr = &internal.RetrievalError{ContractID: contractID, Status: resp.StatusCode}
				continue
			}
			return "", &internal.RetrievalError{ContractID: contractID, Status: resp.StatusCode}
		}

		return string(body), nil
	}

	if lastErr == nil {
		lastErr = &internal.RetrievalError{ContractID: contractID, Err: fmt.Errorf("request failed")}
	}
	return "", lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}
