package ratings

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bibiti/supportbot/internal/domain"
)

type staticSource []domain.User

func (s staticSource) Snapshot() []domain.User { return s }

func ptr(v int) *int { return &v }

func TestAverageForEmpty(t *testing.T) {
	s := AverageFor(staticSource{}, "Центр")
	assert.Equal(t, Summary{Location: "Центр"}, s)
}

func TestAverageForSingleDimension(t *testing.T) {
	src := staticSource{
		{ID: 1, Ratings: []domain.LocationRating{{Location: "Центр", DrinkRating: ptr(4)}}},
	}
	s := AverageFor(src, "Центр")
	assert.Equal(t, 4.0, s.AvgDrink)
	assert.Equal(t, 0.0, s.AvgService)
	assert.Equal(t, 1, s.Samples)
}

func TestAverageForRoundsToOneDecimal(t *testing.T) {
	src := staticSource{
		{ID: 1, Ratings: []domain.LocationRating{{Location: "Центр", DrinkRating: ptr(5), ServiceRating: ptr(4)}}},
		{ID: 2, Ratings: []domain.LocationRating{{Location: "Центр", DrinkRating: ptr(4), ServiceRating: ptr(4)}}},
		{ID: 3, Ratings: []domain.LocationRating{{Location: "Центр", DrinkRating: ptr(4)}}},
	}
	s := AverageFor(src, "Центр")
	assert.Equal(t, 4.3, s.AvgDrink)
	assert.Equal(t, 4.0, s.AvgService)
	assert.Equal(t, 3, s.Samples, "samples is the larger dimension count")
}

func TestAverageForIgnoresOtherVenues(t *testing.T) {
	src := staticSource{
		{ID: 1, Ratings: []domain.LocationRating{
			{Location: "Центр", DrinkRating: ptr(1)},
			{Location: "Север", DrinkRating: ptr(5)},
		}},
	}
	s := AverageFor(src, "Север")
	assert.Equal(t, 5.0, s.AvgDrink)
	assert.Equal(t, 1, s.Samples)
}
