package m_review

// Field name constants for the reviews table.
const (
	TableName = "reviews"

	ID        = "id"
	ProductID = "product_id"
	Author    = "author"
	Rating    = "rating"
	Body      = "body"
	CreatedAt = "created_at"
)
