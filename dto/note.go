package dto

type CreateNoteRequest struct {
	Title      string   `json:"title" binding:"required,max=200"`
	Content    string   `json:"content" binding:"required"`
	Tags       []string `json:"tags"`
	IsFavorite bool     `json:"isFavorite"`
}

// UpdateNoteRequest is a partial update: nil fields are left alone.
type UpdateNoteRequest struct {
	Title      *string   `json:"title" binding:"omitempty,max=200"`
	Content    *string   `json:"content"`
	Tags       *[]string `json:"tags"`
	IsFavorite *bool     `json:"isFavorite"`
}
