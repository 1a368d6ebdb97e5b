package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SetRateRequest struct {
	RatePerLike     float64 `json:"rate_per_like"`
	RatePer100Views float64 `json:"rate_per_100_views"`
}

type RateDTO struct {
	RateID          string  `json:"rate_id"`
	RatePerLike     float64 `json:"rate_per_like"`
	RatePer100Views float64 `json:"rate_per_100_views"`
	Active          bool    `json:"active"`
	CreatedAt       string  `json:"created_at"`
}

type RateResponse struct {
	Rate RateDTO `json:"rate"`
}
