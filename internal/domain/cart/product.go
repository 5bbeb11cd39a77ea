package cart

// ProductSnapshot is the catalog product as seen at add time. The store
// trusts Price and Inventory at this moment and never re-validates them
// against a live catalog.
type ProductSnapshot struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Inventory  int     `json:"inventory"`
	Image      string  `json:"image"`
	CategoryID int     `json:"categoryId"`
}

// NewLine copies the snapshot into a fresh cart line with quantity 1.
// CategoryID is dropped; the product id becomes ProductID.
func (p ProductSnapshot) NewLine() Line {
	return Line{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     p.Image,
		Price:     p.Price,
		Inventory: p.Inventory,
		Quantity:  1,
	}
}
