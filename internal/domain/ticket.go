package domain

import "time"

// Category classifies a ticket by the flow that produced it.
type Category string

const (
	CategorySuggestion  Category = "suggestion"
	CategoryCooperation Category = "cooperation"
	CategoryFranchise   Category = "franchise"
	CategoryDrink       Category = "drink-quality"
	CategoryService     Category = "service-quality"
	CategoryGeneral     Category = "general"
)

// Ticket is an immutable record of a user submission awaiting an operator
// reply. The submitter identity is snapshotted at creation time so the ticket
// stays repliable even if the user's directory profile changes later.
type Ticket struct {
	ID        string
	UserID    int64
	ChatID    int64
	Username  string
	FullName  string
	Category  Category
	Body      string
	CreatedAt time.Time
}
