package m_comment

// Field name constants for the comments table.
const (
	TableName = "comments"

	ID        = "id"
	ProductID = "product_id"
	Author    = "author"
	Body      = "body"
	CreatedAt = "created_at"
)
