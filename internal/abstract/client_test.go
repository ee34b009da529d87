package abstract

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"mndotbids/internal"
	"mndotbids/internal/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

const fixtureText = "Contract Id,Letting Date\n200131,04/17/2020\n\n" +
	"ItemNumber,Quantity\n2105/501/20,1000\n\n" +
	"Bidder Number,Bidder Name\n12345,ACME\n"

func testClient(transport roundTripFunc) *Client {
	cfg, _ := config.Load()
	cfg.AbstractBaseURL = "http://example.test/abstractCSV.aspx"
	cfg.AbstractRateLimitPS = 1000
	client := NewClient(cfg)
	client.httpClient = &http.Client{Transport: transport}
	return client
}

func TestFetchWithRetry(t *testing.T) {
	attempt := 0
	client := testClient(func(r *http.Request) (*http.Response, error) {
		if r.URL.Query().Get("ContractId") != "200131" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		attempt++
		if attempt == 1 {
			return &http.Response{
				StatusCode: http.StatusServiceUnavailable,
				Body:       io.NopCloser(strings.NewReader("busy")),
				Header:     make(http.Header),
			}, nil
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(fixtureText)),
			Header:     make(http.Header),
		}, nil
	})

	raw, err := client.Fetch(context.Background(), 200131)
	if err != nil {
		t.Fatal(err)
	}
	if attempt != 2 {
		t.Fatalf("attempts=%d", attempt)
	}
	if raw.ContractID != 200131 || !strings.HasPrefix(raw.BidBlock, "ItemNumber") {
		t.Fatalf("raw: %+v", raw)
	}
}

func TestFetchNotFound(t *testing.T) {
	client := testClient(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(strings.NewReader("no such abstract")),
			Header:     make(http.Header),
		}, nil
	})

	_, err := client.Fetch(context.Background(), 999999)
	var retrievalErr *internal.RetrievalError
	if !errors.As(err, &retrievalErr) {
		t.Fatalf("err=%v, want RetrievalError", err)
	}
	if retrievalErr.Status != http.StatusNotFound || retrievalErr.ContractID != 999999 {
		t.Fatalf("retrieval error: %+v", retrievalErr)
	}
}
