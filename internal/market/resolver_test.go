package market

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeFetcher struct {
	card *Card
	err  error
}

func (f *fakeFetcher) FetchCard(_ context.Context, cardId string) (*Card, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.card, nil
}

type fakeSnapshot struct {
	price SnapshotPrice
	found bool
	err   error
}

func (s *fakeSnapshot) SnapshotPrice(_ context.Context, _ string) (SnapshotPrice, bool, error) {
	return s.price, s.found, s.err
}

func liveCard(market float64) *Card {
	return &Card{
		Id: "sv8-161",
		Tcgplayer: &Tcgplayer{
			Prices: &TcgplayerPrices{Holofoil: &TierPrices{Market: &market}},
		},
	}
}

func TestResolvePrefersLive(t *testing.T) {
	r := NewResolver(
		&fakeFetcher{card: liveCard(42.5)},
		NewPriceCache(time.Minute, nil),
		&fakeSnapshot{price: SnapshotPrice{Market: fp(10)}, found: true},
	)
	price, err := r.Resolve(context.Background(), "sv8-161", true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if price != 42.5 {
		t.Errorf("price = %v, want live 42.5", price)
	}
}

func TestResolveFallsBackToSnapshot(t *testing.T) {
	r := NewResolver(
		&fakeFetcher{err: ErrCardNotFound},
		NewPriceCache(time.Minute, nil),
		&fakeSnapshot{price: SnapshotPrice{Market: fp(15.5)}, found: true},
	)
	price, err := r.Resolve(context.Background(), "sv8-161", true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if price != 15.5 {
		t.Errorf("price = %v, want snapshot 15.5", price)
	}
}

func TestResolveSnapshotMidFallback(t *testing.T) {
	// 快照没有market时取mid
	r := NewResolver(
		nil,
		NewPriceCache(time.Minute, nil),
		&fakeSnapshot{price: SnapshotPrice{Mid: fp(9.9)}, found: true},
	)
	price, err := r.Resolve(context.Background(), "sv8-161", false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if price != 9.9 {
		t.Errorf("price = %v, want mid 9.9", price)
	}
}

func TestResolveSkipsLiveWhenNotPreferred(t *testing.T) {
	fetcher := &fakeFetcher{card: liveCard(100)}
	r := NewResolver(
		fetcher,
		NewPriceCache(time.Minute, nil),
		&fakeSnapshot{price: SnapshotPrice{Market: fp(5)}, found: true},
	)
	price, err := r.Resolve(context.Background(), "sv8-161", false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if price != 5 {
		t.Errorf("price = %v, want snapshot 5 when live not preferred", price)
	}
}

func TestResolveUnavailable(t *testing.T) {
	// 实时404、快照无此卡
	r := NewResolver(
		&fakeFetcher{err: ErrCardNotFound},
		NewPriceCache(time.Minute, nil),
		&fakeSnapshot{found: false},
	)
	if _, err := r.Resolve(context.Background(), "nope-1", true); !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("err = %v, want ErrPriceUnavailable", err)
	}

	// 快照存在但market和mid都为空
	r = NewResolver(nil, NewPriceCache(time.Minute, nil), &fakeSnapshot{found: true})
	if _, err := r.Resolve(context.Background(), "sv8-161", false); !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("err = %v, want ErrPriceUnavailable", err)
	}

	// 快照查询报错也折叠成不可得
	r = NewResolver(nil, NewPriceCache(time.Minute, nil), &fakeSnapshot{err: errors.New("db down")})
	if _, err := r.Resolve(context.Background(), "sv8-161", false); !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("err = %v, want ErrPriceUnavailable", err)
	}
}

func TestLiveUsesCache(t *testing.T) {
	fetcher := &countingFetcher{card: liveCard(50)}
	r := NewResolver(fetcher, NewPriceCache(time.Minute, nil), nil)

	for i := 0; i < 3; i++ {
		summary, err := r.Live(context.Background(), "sv8-161")
		if err != nil {
			t.Fatalf("Live: %v", err)
		}
		if summary.Market == nil || *summary.Market != 50 {
			t.Fatalf("market = %v", summary.Market)
		}
	}
	if fetcher.calls != 1 {
		t.Errorf("fetch calls = %d, want 1", fetcher.calls)
	}
}

type countingFetcher struct {
	card  *Card
	calls int
}

func (f *countingFetcher) FetchCard(_ context.Context, _ string) (*Card, error) {
	f.calls++
	return f.card, nil
}
