package application

import (
	"context"
	"log/slog"
	"strings"

	"claimdesk/contexts/creator-earnings/rate-service/domain/entities"
	domainerrors "claimdesk/contexts/creator-earnings/rate-service/domain/errors"
	"claimdesk/contexts/creator-earnings/rate-service/ports"
)

type SetActiveRateInput struct {
	RatePerLike     float64
	RatePer100Views float64
	ActorID         string
}

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (s Service) SetActiveRate(ctx context.Context, input SetActiveRateInput) (entities.RateConfiguration, error) {
	rateID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.RateConfiguration{}, err
	}
	rate := entities.RateConfiguration{
		RateID:          rateID,
		RatePerLike:     input.RatePerLike,
		RatePer100Views: input.RatePer100Views,
		Active:          true,
		CreatedBy:       strings.TrimSpace(input.ActorID),
		CreatedAt:       s.Clock.Now().UTC(),
	}
	if !rate.ValidateCreate() {
		return entities.RateConfiguration{}, domainerrors.ErrInvalidRateInput
	}
	if err := s.Repo.ReplaceActiveRate(ctx, rate); err != nil {
		return entities.RateConfiguration{}, err
	}
	resolveLogger(s.Logger).Info("rate configuration replaced",
		"event", "rate_configuration_replaced",
		"module", "creator-earnings/rate-service",
		"layer", "application",
		"rate_id", rate.RateID,
		"rate_per_like", rate.RatePerLike,
		"rate_per_100_views", rate.RatePer100Views,
	)
	return rate, nil
}

func (s Service) GetActiveRate(ctx context.Context) (entities.RateConfiguration, error) {
	return s.Repo.GetActiveRate(ctx)
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
