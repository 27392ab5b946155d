package model

// Claim represents a factual assertion extracted from the input text
type Claim struct {
	ID              string   `json:"id"`               // Stable identifier (C1, C2, ...)
	Text            string   `json:"claim"`            // The claim itself, one sentence
	NormalizedQuery string   `json:"normalized_query"` // Search keywords for evidence collection
	Category        Category `json:"category"`         // Predicted topic category
}

// Category classifies the topic of a claim
type Category string

const (
	CategoryTech      Category = "tech"
	CategoryScience   Category = "science"
	CategoryPolicy    Category = "policy"
	CategoryHealth    Category = "health"
	CategoryFinance   Category = "finance"
	CategoryCommunity Category = "community"
	CategoryGeneral   Category = "general"
)

// Categories lists all recognized claim categories
var Categories = []Category{
	CategoryTech,
	CategoryScience,
	CategoryPolicy,
	CategoryHealth,
	CategoryFinance,
	CategoryCommunity,
	CategoryGeneral,
}

// ParseCategory converts a string to a Category, defaulting to general
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if string(c) == s {
			return c
		}
	}
	return CategoryGeneral
}
