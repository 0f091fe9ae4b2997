package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestCurrentPrice(t *testing.T) {
	tests := []struct {
		name string
		list float64
		sale *float64
		want float64
	}{
		{"no sale", 1500, nil, 1500},
		{"sale below list", 1500, fptr(1200), 1200},
		{"sale equal to list is ignored", 1500, fptr(1500), 1500},
		{"sale above list is ignored", 1500, fptr(1800), 1500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BookModel{BookListPrice: tt.list, BookSalePrice: tt.sale}
			assert.InDelta(t, tt.want, b.CurrentPrice(), 1e-9)
		})
	}
}

func TestDiscountPercentage(t *testing.T) {
	tests := []struct {
		name string
		list float64
		sale *float64
		want float64
	}{
		{"no sale", 1000, nil, 0},
		{"flat quarter off", 1000, fptr(750), 25},
		{"rounded to one decimal", 1299, fptr(1099), 15.4},
		{"sale above list", 1000, fptr(1100), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BookModel{BookListPrice: tt.list, BookSalePrice: tt.sale}
			assert.InDelta(t, tt.want, b.DiscountPercentage(), 1e-9)
		})
	}
}

func TestStockStatus(t *testing.T) {
	b := BookModel{BookStockQuantity: 0, BookLowStockThreshold: 10}
	assert.Equal(t, "Out of Stock", b.StockStatus())

	b.BookStockQuantity = 7
	assert.Equal(t, "Only 7 left", b.StockStatus())

	b.BookStockQuantity = 11
	assert.Equal(t, "In Stock", b.StockStatus())
}

func TestCanFulfill(t *testing.T) {
	physical := BookModel{BookFormat: BookFormatPaperback, BookStockQuantity: 5}
	assert.True(t, physical.CanFulfill(5))
	assert.False(t, physical.CanFulfill(6))

	// backorders extend the floor to -max
	physical.BookAllowBackorders = true
	physical.BookMaxBackorders = 3
	assert.True(t, physical.CanFulfill(8))
	assert.False(t, physical.CanFulfill(9))

	ebook := BookModel{BookFormat: BookFormatEbook, BookStockQuantity: 0}
	assert.True(t, ebook.CanFulfill(999))
	assert.False(t, ebook.IsPhysical())
}
