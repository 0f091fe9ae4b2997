package model

import (
	"fmt"
	"math"
)

// Pure pricing/stock helpers, used by checkout validation and
// catalog display alike.

// CurrentPrice: sale price when set and lower than list, else list price.
func (b *BookModel) CurrentPrice() float64 {
	if b.BookSalePrice != nil && *b.BookSalePrice < b.BookListPrice {
		return *b.BookSalePrice
	}
	return b.BookListPrice
}

// DiscountPercentage: 0 when no effective sale, else (list-sale)/list*100
// rounded to one decimal.
func (b *BookModel) DiscountPercentage() float64 {
	if b.BookSalePrice == nil || *b.BookSalePrice >= b.BookListPrice {
		return 0
	}
	discount := ((b.BookListPrice - *b.BookSalePrice) / b.BookListPrice) * 100
	return math.Round(discount*10) / 10
}

// StockStatus: human-readable stock label.
func (b *BookModel) StockStatus() string {
	switch {
	case b.BookStockQuantity <= 0:
		return "Out of Stock"
	case b.BookStockQuantity <= b.BookLowStockThreshold:
		return fmt.Sprintf("Only %d left", b.BookStockQuantity)
	default:
		return "In Stock"
	}
}

// InStock: sellable right now, counting backorder capacity.
func (b *BookModel) InStock() bool {
	return b.BookStockQuantity > 0 || (b.BookAllowBackorders && b.BookMaxBackorders > 0)
}

// CanFulfill reports whether a requested quantity can be sold: enough stock,
// or backorders cover the shortfall. E-books always fulfill.
func (b *BookModel) CanFulfill(quantity int) bool {
	if !b.IsPhysical() {
		return true
	}
	if b.BookStockQuantity >= quantity {
		return true
	}
	if !b.BookAllowBackorders {
		return false
	}
	return b.BookStockQuantity-quantity >= -b.BookMaxBackorders
}
