package service

import (
	"cardpulse/internal/market"
	"cardpulse/internal/model/entity"
	"context"
	"database/sql"
	"testing"
	"time"
)

func snapCard(id, name string, marketPrice float64) entity.Card {
	return entity.Card{
		Id:              id,
		SetId:           "sv8",
		Name:            name,
		TcgplayerMarket: sql.NullFloat64{Float64: marketPrice, Valid: true},
	}
}

func newCardServiceWithCards(cards ...entity.Card) *CardService {
	byId := make(map[string]entity.Card, len(cards))
	for _, c := range cards {
		byId[c.Id] = c
	}
	cardDao := &stubCardDAO{cards: byId}
	resolver := market.NewResolver(nil, market.NewPriceCache(time.Minute, nil), cardDao)
	return NewCardService(cardDao, resolver, nil)
}

func TestSearchExactMatchWinsOverFuzzy(t *testing.T) {
	svc := newCardServiceWithCards(
		snapCard("sv8-161", "Pikachu ex", 120),
		snapCard("sv8-57", "Pikachu", 3),
		snapCard("sv8-25", "Raichu", 8),
	)

	results, err := svc.Search(context.Background(), "Pikachu", "", "", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) < 2 {
		t.Fatalf("results = %d, want at least 2", len(results))
	}
	if results[0].Name != "Pikachu" {
		t.Errorf("exact match should rank first, got %q", results[0].Name)
	}
}

func TestSearchFiltersUnrelated(t *testing.T) {
	svc := newCardServiceWithCards(
		snapCard("sv8-161", "Pikachu ex", 120),
		snapCard("sv8-200", "Gholdengo", 15),
	)

	results, err := svc.Search(context.Background(), "pikachu", "", "", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, r := range results {
		if r.Name == "Gholdengo" {
			t.Error("unrelated card should fall below the score threshold")
		}
	}
}

func TestSearchNormalizesPunctuation(t *testing.T) {
	svc := newCardServiceWithCards(
		snapCard("sv9-12", "N's Zorua", 5),
	)

	results, err := svc.Search(context.Background(), "ns zorua", "", "", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Id != "sv9-12" {
		t.Errorf("apostrophe should not block the match, got %+v", results)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := newCardServiceWithCards(snapCard("sv8-161", "Pikachu ex", 120))
	results, err := svc.Search(context.Background(), "  !! ", "", "", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("empty normalized query should return nothing, got %d", len(results))
	}
}

func TestGetPriceSnapshotFallbackOrder(t *testing.T) {
	// market缺失时price取mid
	card := entity.Card{
		Id:           "sv8-1",
		SetId:        "sv8",
		Name:         "Snivy",
		TcgplayerMid: sql.NullFloat64{Float64: 0.25, Valid: true},
	}
	svc := newCardServiceWithCards(card)

	info, err := svc.GetPrice(context.Background(), "sv8-1", false)
	if err != nil {
		t.Fatalf("GetPrice: %v", err)
	}
	if info.Price != 0.25 || info.Source != "snapshot" {
		t.Errorf("info = %+v", info)
	}

	// 两者都缺时报价格不可得
	bare := entity.Card{Id: "sv8-2", SetId: "sv8", Name: "Servine"}
	svc = newCardServiceWithCards(bare)
	if _, err := svc.GetPrice(context.Background(), "sv8-2", false); err == nil {
		t.Error("card without any quote should be unavailable")
	}

	// 未知卡报not found
	if _, err := svc.GetPrice(context.Background(), "nope-1", false); err == nil {
		t.Error("unknown card should error")
	}
}
