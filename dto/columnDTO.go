package dto

// Order fields are pointers so that zero binds as a present value.
type CreateColumnRequest struct {
	Title     string `json:"title" binding:"required"`
	ProjectID string `json:"projectId" binding:"required"`
	Order     *int   `json:"order" binding:"required"`
}

type UpdateColumnRequest struct {
	Title string `json:"title" binding:"required"`
}

type ColumnSetItem struct {
	ID    string `json:"id" binding:"required"`
	Order *int   `json:"order" binding:"required"`
}
