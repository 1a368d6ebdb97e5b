package rateservice

import (
	"context"
	"errors"
	"testing"

	domainerrors "claimdesk/contexts/creator-earnings/rate-service/domain/errors"
	httptransport "claimdesk/contexts/creator-earnings/rate-service/transport/http"
)

func TestSetActiveRateReplacesPrevious(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()

	first, err := module.Handler.SetRateHandler(ctx, "admin-1", httptransport.SetRateRequest{
		RatePerLike:     0.01,
		RatePer100Views: 0.50,
	})
	if err != nil {
		t.Fatalf("set first rate: %v", err)
	}
	if !first.Rate.Active {
		t.Fatalf("expected new rate to be active")
	}

	second, err := module.Handler.SetRateHandler(ctx, "admin-1", httptransport.SetRateRequest{
		RatePerLike:     0.02,
		RatePer100Views: 0.80,
	})
	if err != nil {
		t.Fatalf("set second rate: %v", err)
	}

	active, err := module.Handler.GetActiveRateHandler(ctx)
	if err != nil {
		t.Fatalf("get active rate: %v", err)
	}
	if active.Rate.RateID != second.Rate.RateID {
		t.Fatalf("expected %s to be active, got %s", second.Rate.RateID, active.Rate.RateID)
	}
	if active.Rate.RatePerLike != 0.02 || active.Rate.RatePer100Views != 0.80 {
		t.Fatalf("unexpected active rate: %+v", active.Rate)
	}
}

func TestSetRateRejectsNonPositiveValues(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()

	cases := []httptransport.SetRateRequest{
		{RatePerLike: 0, RatePer100Views: 0},
		{RatePerLike: -0.01, RatePer100Views: 0.50},
		{RatePerLike: 0.01, RatePer100Views: -0.50},
	}
	for _, req := range cases {
		if _, err := module.Handler.SetRateHandler(ctx, "admin-1", req); !errors.Is(err, domainerrors.ErrInvalidRateInput) {
			t.Fatalf("request %+v: expected ErrInvalidRateInput, got %v", req, err)
		}
	}
}

func TestGetActiveRateWithoutConfiguration(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	_, err := module.Handler.GetActiveRateHandler(context.Background())
	if !errors.Is(err, domainerrors.ErrNoActiveRate) {
		t.Fatalf("expected ErrNoActiveRate, got %v", err)
	}
}
