package products

// Product is a catalog entry. Prices are decimal strings, as served.
type Product struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Price        string `json:"price"`
	Stock        int    `json:"stock"`
	Image        string `json:"image,omitempty"`
	Category     int64  `json:"category,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	CategorySlug string `json:"category_slug,omitempty"`
	IsActive     bool   `json:"is_active,omitempty"`
}

// InStock reports whether the product can currently be added to a cart.
func (p *Product) InStock() bool {
	return p != nil && p.Stock > 0
}

type Category struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Slug          string `json:"slug,omitempty"`
	IsActive      bool   `json:"is_active,omitempty"`
	ProductsCount int    `json:"products_count,omitempty"`
}
