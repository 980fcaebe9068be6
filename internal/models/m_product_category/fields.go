package m_product_category

// Field name constants for the product_categories join table.
// Both columns carry enforced foreign keys.
const (
	TableName = "product_categories"

	ProductID  = "product_id"
	CategoryID = "category_id"
)
