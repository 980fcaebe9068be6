package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	ID          = "id"
	Name        = "name"
	Description = "description"
	Price       = "price"
	OldPrice    = "old_price"
	Discount    = "discount"
	Rating      = "rating"
	Colors      = "colors"
	BrandIDs    = "brand_ids"
	Gender      = "gender"
	Occasions   = "occasions"
	ImageURL    = "image_url"
	CreatedAt   = "created_at"
)
