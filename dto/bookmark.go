package dto

type CreateBookmarkRequest struct {
	URL         string   `json:"url" binding:"required,weburl"`
	Title       string   `json:"title" binding:"max=300"`
	Description string   `json:"description" binding:"max=1000"`
	Tags        []string `json:"tags"`
	IsFavorite  bool     `json:"isFavorite"`
}

// UpdateBookmarkRequest is a partial update: nil fields are left alone.
type UpdateBookmarkRequest struct {
	URL         *string   `json:"url" binding:"omitempty,weburl"`
	Title       *string   `json:"title" binding:"omitempty,max=300"`
	Description *string   `json:"description" binding:"omitempty,max=1000"`
	Tags        *[]string `json:"tags"`
	IsFavorite  *bool     `json:"isFavorite"`
}

