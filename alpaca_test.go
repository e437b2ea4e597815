package folio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var testCreds = Credentials{APIKey: "PKTEST", APISecret: "secret"}

func TestLatestPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/stocks/trades/latest" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("APCA-API-KEY-ID"); got != "PKTEST" {
			t.Errorf("key header = %q, want PKTEST", got)
		}
		if got := r.Header.Get("APCA-API-SECRET-KEY"); got != "secret" {
			t.Errorf("secret header = %q, want secret", got)
		}
		fmt.Fprint(w, `{"trades":{"AAPL":{"p":187.15,"t":"2025-06-02T14:30:00Z"},"MSFT":{"p":300.5}}}`)
	}))
	defer srv.Close()

	client := NewAlpacaClient(testCreds, srv.URL, "iex")
	prices, err := client.LatestPrices(context.Background(), []string{"AAPL", "MSFT", "NOPE"})
	if err != nil {
		t.Fatal(err)
	}

	if !prices["AAPL"].Equal(M(187.15)) {
		t.Errorf("AAPL = %s, want %s", prices["AAPL"], M(187.15))
	}
	if !prices["MSFT"].Equal(M(300.5)) {
		t.Errorf("MSFT = %s, want %s", prices["MSFT"], M(300.5))
	}
	// A symbol the provider cannot quote is simply absent.
	if _, ok := prices["NOPE"]; ok {
		t.Error("unquoted symbol must be absent from the result")
	}
}

func TestLatestPricesNoCredentials(t *testing.T) {
	client := NewAlpacaClient(Credentials{}, "http://localhost:0", "iex")
	_, err := client.LatestPrices(context.Background(), []string{"AAPL"})
	if !errors.Is(err, ErrNoCredentials) {
		t.Errorf("err = %v, want ErrNoCredentials", err)
	}
	if !errors.Is(err, ErrPriceSourceUnavailable) {
		t.Errorf("err = %v, want ErrPriceSourceUnavailable", err)
	}
}

func TestLatestPricesProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewAlpacaClient(testCreds, srv.URL, "iex")
	_, err := client.LatestPrices(context.Background(), []string{"AAPL"})
	if !errors.Is(err, ErrPriceSourceUnavailable) {
		t.Errorf("err = %v, want ErrPriceSourceUnavailable", err)
	}
}

func TestDailyBarsPagination(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/v2/stocks/bars" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("page_token") == "" {
			fmt.Fprint(w, `{"bars":{"AAPL":[{"t":"2025-06-02","o":100,"c":101}]},"next_page_token":"tok1"}`)
			return
		}
		if got := r.URL.Query().Get("page_token"); got != "tok1" {
			t.Errorf("page_token = %q, want tok1", got)
		}
		fmt.Fprint(w, `{"bars":{"AAPL":[{"t":"2025-06-03","o":101,"c":102}]},"next_page_token":null}`)
	}))
	defer srv.Close()

	client := NewAlpacaClient(testCreds, srv.URL, "iex")
	client.cached = srv.Client() // bypass the disk cache, the test counts requests
	from := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	bars, err := client.DailyBars(context.Background(), []string{"AAPL"}, from, to)
	if err != nil {
		t.Fatal(err)
	}

	if calls != 2 {
		t.Errorf("calls = %d, want 2 (pagination)", calls)
	}
	got := bars["AAPL"]
	if len(got) != 2 || got[0].Day != "2025-06-02" || got[1].Close != 102 {
		t.Errorf("bars = %+v, want two days ending at close 102", got)
	}
}
