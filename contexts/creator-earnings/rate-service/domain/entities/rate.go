package entities

import "time"

// RateConfiguration prices engagement. Exactly one record is active at any
// time; claims snapshot the active rate at creation, so older records are
// kept for audit rather than deleted.
type RateConfiguration struct {
	RateID          string
	RatePerLike     float64
	RatePer100Views float64
	Active          bool
	CreatedBy       string
	CreatedAt       time.Time
}

func (r RateConfiguration) ValidateCreate() bool {
	return r.RatePerLike >= 0 && r.RatePer100Views >= 0 &&
		(r.RatePerLike > 0 || r.RatePer100Views > 0)
}
