package services

import (
	"math"

	"claimdesk/contexts/creator-earnings/claim-service/ports"
)

// CalculateEarnings maps post engagement counters and the rate configuration
// that is active at submission time to a monetary total. Pure and
// deterministic: claims lock in the rate they were created under.
func CalculateEarnings(posts []ports.PostForClaim, rate ports.RateConfiguration) float64 {
	total := 0.0
	for _, post := range posts {
		total += float64(post.LikeCount)*rate.RatePerLike +
			(float64(post.ViewCount)/100.0)*rate.RatePer100Views
	}
	return round2(total)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
