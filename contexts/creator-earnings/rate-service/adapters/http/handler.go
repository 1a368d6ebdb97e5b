package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"claimdesk/contexts/creator-earnings/rate-service/application"
	"claimdesk/contexts/creator-earnings/rate-service/domain/entities"
	httptransport "claimdesk/contexts/creator-earnings/rate-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// @Summary Replace the active rate configuration
// @Tags rates
// @Param request body http.SetRateRequest true "rates"
// @Success 200 {object} http.RateResponse
// @Router /v1/rates [post]
func (h Handler) SetRateHandler(ctx context.Context, actorID string, req httptransport.SetRateRequest) (httptransport.RateResponse, error) {
	rate, err := h.Service.SetActiveRate(ctx, application.SetActiveRateInput{
		RatePerLike:     req.RatePerLike,
		RatePer100Views: req.RatePer100Views,
		ActorID:         actorID,
	})
	if err != nil {
		return httptransport.RateResponse{}, err
	}
	return httptransport.RateResponse{Rate: mapRate(rate)}, nil
}

// @Summary Get the active rate configuration
// @Tags rates
// @Success 200 {object} http.RateResponse
// @Router /v1/rates/active [get]
func (h Handler) GetActiveRateHandler(ctx context.Context) (httptransport.RateResponse, error) {
	rate, err := h.Service.GetActiveRate(ctx)
	if err != nil {
		return httptransport.RateResponse{}, err
	}
	return httptransport.RateResponse{Rate: mapRate(rate)}, nil
}

func mapRate(rate entities.RateConfiguration) httptransport.RateDTO {
	return httptransport.RateDTO{
		RateID:          rate.RateID,
		RatePerLike:     rate.RatePerLike,
		RatePer100Views: rate.RatePer100Views,
		Active:          rate.Active,
		CreatedAt:       rate.CreatedAt.Format(time.RFC3339),
	}
}
