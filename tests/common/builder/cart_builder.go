//go:build unit || e2e

package builder

import (
	"storefront-cart/internal/domain/cart"
	reqdto "storefront-cart/internal/handler/dto/request"
)

type ProductBuilder struct {
	ID         int
	Name       string
	Price      float64
	Inventory  int
	Image      string
	CategoryID int
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		ID:         1,
		Name:       "Electric Drill",
		Price:      50000,
		Inventory:  10,
		Image:      "drill.jpg",
		CategoryID: 1,
	}
}

func (b *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ProductBuilder) Build() cart.ProductSnapshot {
	return cart.ProductSnapshot{
		ID:         b.ID,
		Name:       b.Name,
		Price:      b.Price,
		Inventory:  b.Inventory,
		Image:      b.Image,
		CategoryID: b.CategoryID,
	}
}

func (b *ProductBuilder) BuildAddRequestDTO() reqdto.AddItemRequest {
	return reqdto.AddItemRequest{
		ID:         b.ID,
		Name:       b.Name,
		Price:      b.Price,
		Inventory:  b.Inventory,
		Image:      b.Image,
		CategoryID: b.CategoryID,
	}
}

func (b *ProductBuilder) BuildLine(quantity int) cart.Line {
	l := b.Build().NewLine()
	l.Quantity = quantity
	return l
}

// Fluent builder methods
func (b *ProductBuilder) WithID(id int) *ProductBuilder {
	b.ID = id
	return b
}

func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.Name = name
	return b
}

func (b *ProductBuilder) WithPrice(price float64) *ProductBuilder {
	b.Price = price
	return b
}

func (b *ProductBuilder) WithInventory(inventory int) *ProductBuilder {
	b.Inventory = inventory
	return b
}

func (b *ProductBuilder) AsHammer() *ProductBuilder {
	b.ID = 2
	b.Name = "Hammer"
	b.Price = 25000
	b.Inventory = 5
	b.Image = "hammer.jpg"
	return b
}

func (b *ProductBuilder) AsScrewdriver() *ProductBuilder {
	b.ID = 3
	b.Name = "Screwdriver"
	b.Price = 15000
	b.Inventory = 2
	b.Image = "screwdriver.jpg"
	return b
}

// StateBuilder assembles a persisted cart state for rehydration tests.
type StateBuilder struct {
	Contents []cart.Line
	Coupon   cart.Coupon
	Discount float64
	Total    float64
}

func NewStateBuilder() *StateBuilder {
	return &StateBuilder{Contents: []cart.Line{}}
}

func (b *StateBuilder) WithLine(l cart.Line) *StateBuilder {
	b.Contents = append(b.Contents, l)
	return b
}

func (b *StateBuilder) WithCoupon(c cart.Coupon) *StateBuilder {
	b.Coupon = c
	return b
}

func (b *StateBuilder) WithDiscount(d float64) *StateBuilder {
	b.Discount = d
	return b
}

func (b *StateBuilder) WithTotal(t float64) *StateBuilder {
	b.Total = t
	return b
}

func (b *StateBuilder) Build() cart.State {
	return cart.State{
		Contents: b.Contents,
		Coupon:   b.Coupon,
		Discount: b.Discount,
		Total:    b.Total,
	}
}
