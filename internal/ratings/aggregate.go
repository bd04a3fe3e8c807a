// Package ratings computes on-demand venue rating aggregates over the user
// directory. Writes are rare relative to reads, so nothing is cached.
package ratings

import (
	"math"

	"github.com/bibiti/supportbot/internal/domain"
)

// Source yields the directory entries the aggregator scans.
type Source interface {
	Snapshot() []domain.User
}

// Summary holds per-venue averages rounded to one decimal place.
// Samples is the larger of the two per-dimension counts: it reflects how many
// distinct ratings exist even when entries are half-filled.
type Summary struct {
	Location   string
	AvgDrink   float64
	AvgService float64
	Samples    int
}

// AverageFor scans the directory and averages the scores recorded for the
// venue. Entries missing a dimension are excluded from that dimension's
// average. With no samples at all the zero Summary is returned.
func AverageFor(src Source, location string) Summary {
	var (
		drinkSum, drinkN     int
		serviceSum, serviceN int
	)

	for _, u := range src.Snapshot() {
		for _, r := range u.Ratings {
			if r.Location != location {
				continue
			}
			if r.DrinkRating != nil {
				drinkSum += *r.DrinkRating
				drinkN++
			}
			if r.ServiceRating != nil {
				serviceSum += *r.ServiceRating
				serviceN++
			}
		}
	}

	s := Summary{Location: location, Samples: max(drinkN, serviceN)}
	if drinkN > 0 {
		s.AvgDrink = round1(float64(drinkSum) / float64(drinkN))
	}
	if serviceN > 0 {
		s.AvgService = round1(float64(serviceSum) / float64(serviceN))
	}
	return s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
