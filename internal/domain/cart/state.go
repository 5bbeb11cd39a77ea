package cart

// Line is one distinct product held in the cart. Name, Image, Price and
// Inventory are display/pricing metadata copied at add time; later catalog
// changes do not affect lines already in the cart.
type Line struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Inventory int     `json:"inventory"`
	Quantity  int     `json:"quantity"`
}

// Subtotal is quantity * unit price for this line.
func (l Line) Subtotal() float64 {
	return float64(l.Quantity) * l.Price
}

// Coupon is the currently applied promotional code. An empty Name means no
// coupon is applied.
type Coupon struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Message    string  `json:"message"`
}

func (c Coupon) Active() bool {
	return c.Percentage != 0
}

// State is the aggregate cart state. Contents keeps insertion order; at most
// one line exists per ProductID. Discount and Total are derived values.
type State struct {
	Contents []Line  `json:"contents"`
	Coupon   Coupon  `json:"coupon"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

func NewState() State {
	return State{Contents: []Line{}}
}

func (s State) IsEmpty() bool {
	return len(s.Contents) == 0
}

// Subtotal sums quantity * price across all lines, before discount.
func (s State) Subtotal() float64 {
	var sum float64
	for _, l := range s.Contents {
		sum += l.Subtotal()
	}
	return sum
}

// LineIndex returns the position of the line holding productID, or -1.
func (s State) LineIndex(productID int) int {
	for i, l := range s.Contents {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}
