package m_category

// Field name constants for the categories table.
const (
	TableName = "categories"

	ID   = "id"
	Name = "name"
)
