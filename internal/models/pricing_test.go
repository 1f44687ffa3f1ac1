package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByPrice(t *testing.T) {
	items := []PricingItem{
		{Company: "Mid", Price: 50},
		{Company: "High", Price: 100},
		{Company: "Low", Price: 10},
		{Company: "Mid-dup", Price: 50}, // duplicates keep relative order
	}

	desc := SortByPrice(items, true)
	assert.Equal(t, []string{"High", "Mid", "Mid-dup", "Low"}, companies(desc))

	asc := SortByPrice(items, false)
	assert.Equal(t, []string{"Low", "Mid", "Mid-dup", "High"}, companies(asc))

	// Input order is untouched.
	assert.Equal(t, []string{"Mid", "High", "Low", "Mid-dup"}, companies(items))
}

func companies(items []PricingItem) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Company
	}
	return names
}
