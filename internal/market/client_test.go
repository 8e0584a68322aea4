package market

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchCard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Errorf("missing api key header")
		}
		switch r.URL.Path {
		case "/cards/sv8-161":
			w.Write([]byte(`{"data":{"id":"sv8-161","name":"Pikachu ex","number":"161",
				"tcgplayer":{"url":"https://prices.example/sv8-161",
					"prices":{"holofoil":{"market":123.45,"low":100.0}}}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "test-key", 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	card, err := client.FetchCard(context.Background(), "sv8-161")
	if err != nil {
		t.Fatalf("FetchCard: %v", err)
	}
	if card.Name != "Pikachu ex" {
		t.Errorf("name = %q", card.Name)
	}
	summary := ExtractPrices(card)
	if summary.Market == nil || *summary.Market != 123.45 {
		t.Errorf("market = %v, want 123.45", summary.Market)
	}

	if _, err := client.FetchCard(context.Background(), "nope-1"); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("err = %v, want ErrCardNotFound", err)
	}

	// 空ID直接判定未找到，不打上游
	if _, err := client.FetchCard(context.Background(), "  "); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("err = %v, want ErrCardNotFound for blank id", err)
	}
}

func TestFetchCardEmptyEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL, "", time.Second)
	if _, err := client.FetchCard(context.Background(), "sv8-161"); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("err = %v, want ErrCardNotFound on empty envelope", err)
	}
}

func TestNewClientRejectsBadUrl(t *testing.T) {
	if _, err := NewClient("not a url", "", time.Second); err == nil {
		t.Error("invalid base url must be rejected")
	}
}
