package domain

// RatingDimension selects which score of a venue rating is being set.
type RatingDimension string

const (
	// DimensionDrink is the drink quality score.
	DimensionDrink RatingDimension = "drink"
	// DimensionService is the service quality score.
	DimensionService RatingDimension = "service"
)

// LocationRating holds a user's scores for one venue. Either score may be
// absent while the other half of the two-step rating flow is pending.
type LocationRating struct {
	Location      string `json:"location"`
	DrinkRating   *int   `json:"drink_rating,omitempty"`
	ServiceRating *int   `json:"service_rating,omitempty"`
}

// User is a directory entry for a Telegram user. Profile fields mirror the
// platform's current view and are refreshed on every inbound update.
type User struct {
	ID        int64            `json:"-"`
	Username  string           `json:"username"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Ratings   []LocationRating `json:"ratings,omitempty"`
}

// DisplayName returns the best human-readable identification of the user.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return "@" + u.Username
	default:
		return ""
	}
}
