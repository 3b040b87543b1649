package model

import "time"

// Category represents a spending category owned by a single user.
type Category struct {
	ID        int64
	UserID    int64
	Name      string
	CreatedAt time.Time
}

// CategoryRequest represents a create or rename request.
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCategoryResponse converts a Category to its API shape.
func NewCategoryResponse(c *Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

// CategoriesToResponse converts a slice of categories to their API shape.
func CategoriesToResponse(categories []Category) []CategoryResponse {
	result := make([]CategoryResponse, len(categories))
	for i := range categories {
		result[i] = NewCategoryResponse(&categories[i])
	}
	return result
}
