package m_brand

// Field name constants for the brands table.
const (
	TableName = "brands"

	ID   = "id"
	Name = "name"
)
