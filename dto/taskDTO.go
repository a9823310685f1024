package dto

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	ColumnID    string `json:"columnId" binding:"required"`
	Order       *int   `json:"order" binding:"required"`
	AssigneeID  string `json:"assigneeId"`
	Priority    *int   `json:"priority"`
	Description string `json:"description"`
}

// UpdateTaskRequest carries only the mutable fields; column, order and
// project move exclusively through the bulk endpoint. Nil means "leave
// unchanged"; an empty AssigneeID unassigns.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	AssigneeID  *string `json:"assigneeId"`
	Priority    *int    `json:"priority"`
	Description *string `json:"description"`
}

type TaskSetItem struct {
	ID       string `json:"id" binding:"required"`
	ColumnID string `json:"columnId" binding:"required"`
	Order    *int   `json:"order" binding:"required"`
}
