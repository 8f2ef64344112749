package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductFromForm(t *testing.T) {
	form := map[string]string{
		"productName":       "Backpack",
		"amount":            "45",
		"sellerName":        "Anna",
		"secondDescription": "Like new",
		"image":             "https://img.example.com/1.jpg",
		"street":            "Hauptstr. 12",
		"postalCode":        "10115",
		"city":              "Berlin",
		"country":           "Germany",
	}
	get := func(name string) string { return form[name] }

	p := productFromForm(get, "p1")

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Backpack", p.ProductName)
	// 商品记录的价格是 € 前缀形式
	assert.Equal(t, "€45", p.Price)
	assert.Equal(t, "Anna", p.Brand)
	assert.Equal(t, "Like new", p.Condition)
	assert.Equal(t, "Customer", p.BuyerName)
	assert.Equal(t, "Hauptstr. 12, 10115, Berlin, Germany", p.Address)
	assert.Equal(t, "Berlin", p.City)
}

func TestJoinAddressSkipsEmptyParts(t *testing.T) {
	assert.Equal(t, "Berlin, Germany", joinAddress("", "", "Berlin", "Germany"))
	assert.Equal(t, "", joinAddress("", "", "", ""))
}
