package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseDeliveryMethod(t *testing.T) {
	tests := []struct {
		label string
		want  DeliveryMethod
		cost  int64
	}{
		{"standard", DeliveryStandard, 500},
		{"Express", DeliveryExpress, 1000},
		{" cargo ", DeliveryCargo, 1500},
		{"other", DeliveryOther, 0},
		{"drone", DeliveryOther, 0},
		{"", DeliveryOther, 0},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := ParseDeliveryMethod(tt.label)
			assert.Equal(t, tt.want, got)
			assert.True(t, decimal.NewFromInt(tt.cost).Equal(got.Cost()))
		})
	}
}

func TestAddressFormat(t *testing.T) {
	a := Address{Street: "Broadway", House: "123", City: "New York", ZipCode: "10001"}
	assert.Equal(t, "Broadway, 123, New York, 10001", a.Format())

	a.Apartment = "45"
	assert.Equal(t, "Broadway, 123, apt. 45, New York, 10001", a.Format())
}

func TestUpdateAddressRequestApply(t *testing.T) {
	city := "Boston"
	apt := ""
	a := Address{Title: "Home", City: "New York", Apartment: "45"}

	(&UpdateAddressRequest{City: &city, Apartment: &apt}).Apply(&a)

	assert.Equal(t, "Home", a.Title)
	assert.Equal(t, "Boston", a.City)
	assert.Empty(t, a.Apartment)
}

func TestNormalizePage(t *testing.T) {
	page, size := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, size)

	page, size = NormalizePage(3, 1000)
	assert.Equal(t, 3, page)
	assert.Equal(t, MaxPageSize, size)
}

func TestParseOrderSort(t *testing.T) {
	tests := []struct {
		in    string
		field OrderSortField
		asc   bool
	}{
		{"createdAt_desc", SortCreatedAt, false},
		{"createdAt_asc", SortCreatedAt, true},
		{"totalAmount_asc", SortTotalAmount, true},
		{"totalAmount_desc", SortTotalAmount, false},
		{"", SortCreatedAt, false},
		{"name_asc", SortCreatedAt, false},
	}

	for _, tt := range tests {
		field, asc := ParseOrderSort(tt.in)
		assert.Equal(t, tt.field, field, tt.in)
		assert.Equal(t, tt.asc, asc, tt.in)
	}
}
