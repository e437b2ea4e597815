package folio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// This file contains the Alpaca market-data client, the concrete PriceSource.

const (
	// DefaultAlpacaBaseURL is the Alpaca market-data endpoint.
	DefaultAlpacaBaseURL = "https://data.alpaca.markets"
	// DefaultAlpacaFeed is the free data feed.
	DefaultAlpacaFeed = "iex"

	// alpacaMaxSymbolsPerRequest limits how many symbols go into one query;
	// larger sets are fetched in chunks.
	alpacaMaxSymbolsPerRequest = 200
)

// AlpacaClient fetches current prices and daily bars from the Alpaca
// market-data API. The zero value is not usable; use NewAlpacaClient.
type AlpacaClient struct {
	BaseURL string
	Feed    string
	creds   Credentials
	client  *http.Client
	cached  *http.Client
}

// NewAlpacaClient creates a client authenticated with the given credentials.
func NewAlpacaClient(creds Credentials, baseURL, feed string) *AlpacaClient {
	if baseURL == "" {
		baseURL = DefaultAlpacaBaseURL
	}
	if feed == "" {
		feed = DefaultAlpacaFeed
	}
	return &AlpacaClient{
		BaseURL: baseURL,
		Feed:    feed,
		creds:   creds,
		client:  &http.Client{Timeout: 30 * time.Second},
		cached:  daily(),
	}
}

func (c *AlpacaClient) headers() map[string]string {
	return map[string]string{
		"APCA-API-KEY-ID":     c.creds.APIKey,
		"APCA-API-SECRET-KEY": c.creds.APISecret,
	}
}

// LatestPrices implements PriceSource using the latest-trades endpoint. The
// returned map contains a price for every symbol the provider could quote;
// symbols it cannot quote are absent. With no credentials configured the call
// fails with ErrNoCredentials before any request is made.
func (c *AlpacaClient) LatestPrices(ctx context.Context, symbols []string) (map[string]Money, error) {
	if c.creds.IsZero() {
		return nil, fmt.Errorf("%w: %w", ErrPriceSourceUnavailable, ErrNoCredentials)
	}

	prices := make(map[string]Money, len(symbols))
	for chunk := range chunked(symbols, alpacaMaxSymbolsPerRequest) {
		addr := fmt.Sprintf("%s/v2/stocks/trades/latest?feed=%s&symbols=%s",
			c.BaseURL, url.QueryEscape(c.Feed), url.QueryEscape(strings.Join(chunk, ",")))

		// The payload nests prices under per-symbol trade objects:
		//   {"trades": {"AAPL": {"p": 187.15, "t": "..."}, ...}}
		var jobj any
		if err := jwget(ctx, c.client, addr, c.headers(), &jobj); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPriceSourceUnavailable, err)
		}
		for _, symbol := range chunk {
			jval, err := jsonpath.Get(fmt.Sprintf("$.trades[%q].p", symbol), jobj)
			if err != nil {
				// Symbol unknown to the provider, leave it unquoted.
				continue
			}
			val, ok := jval.(float64)
			if !ok {
				return nil, fmt.Errorf("%w: price for %q is not a number: %v", ErrPriceSourceUnavailable, symbol, jval)
			}
			prices[symbol] = M(val)
		}
	}
	return prices, nil
}

// DailyBar is one day of trading for a symbol.
type DailyBar struct {
	Day   string  `json:"t"`
	Open  float64 `json:"o"`
	Close float64 `json:"c"`
}

// DailyBars fetches daily bars for the given symbols between from and to,
// following the provider's page tokens until the response is exhausted.
// Responses go through the daily disk cache, historical bars don't change
// within a day.
func (c *AlpacaClient) DailyBars(ctx context.Context, symbols []string, from, to time.Time) (map[string][]DailyBar, error) {
	if c.creds.IsZero() {
		return nil, fmt.Errorf("%w: %w", ErrPriceSourceUnavailable, ErrNoCredentials)
	}

	bars := make(map[string][]DailyBar)
	for chunk := range chunked(symbols, alpacaMaxSymbolsPerRequest) {
		pageToken := ""
		for {
			addr := fmt.Sprintf("%s/v2/stocks/bars?feed=%s&timeframe=1Day&start=%s&end=%s&symbols=%s",
				c.BaseURL, url.QueryEscape(c.Feed),
				from.UTC().Format("2006-01-02"), to.UTC().Format("2006-01-02"),
				url.QueryEscape(strings.Join(chunk, ",")))
			if pageToken != "" {
				addr += "&page_token=" + url.QueryEscape(pageToken)
			}

			var page struct {
				Bars          map[string][]DailyBar `json:"bars"`
				NextPageToken *string               `json:"next_page_token"`
			}
			if err := jwget(ctx, c.cached, addr, c.headers(), &page); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrPriceSourceUnavailable, err)
			}
			for symbol, b := range page.Bars {
				bars[symbol] = append(bars[symbol], b...)
			}
			if page.NextPageToken == nil || *page.NextPageToken == "" {
				break
			}
			pageToken = *page.NextPageToken
		}
	}
	return bars, nil
}

// chunked yields the slice in pieces of at most size elements.
func chunked(symbols []string, size int) func(yield func([]string) bool) {
	return func(yield func([]string) bool) {
		for start := 0; start < len(symbols); start += size {
			end := start + size
			if end > len(symbols) {
				end = len(symbols)
			}
			if !yield(symbols[start:end]) {
				return
			}
		}
	}
}
