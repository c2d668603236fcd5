package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func milk(quantity int) CartItem {
	return CartItem{ProductID: "p1", Name: "Fresh Milk 1L", Price: 25000, Quantity: quantity}
}

func yogurt(quantity int) CartItem {
	return CartItem{ProductID: "p2", Name: "Yogurt Pack", Price: 40000, Quantity: quantity}
}

func TestCart_Add(t *testing.T) {
	cart := NewCart("user-1")

	cart.Add(milk(2))
	cart.Add(yogurt(1))

	require.Len(t, cart.Items, 2)
	assert.Equal(t, 3, cart.TotalQuantity)
	assert.Equal(t, float64(90000), cart.TotalPrice)
}

func TestCart_Add_MergesSameProduct(t *testing.T) {
	cart := NewCart("user-1")

	cart.Add(milk(2))
	cart.Add(milk(3))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, float64(125000), cart.TotalPrice)
}

func TestCart_Remove(t *testing.T) {
	cart := NewCart("user-1")
	cart.Add(milk(2))
	cart.Add(yogurt(1))

	cart.Remove("p1")

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)
	assert.Equal(t, float64(40000), cart.TotalPrice)
}

func TestCart_Remove_AbsentProductIsNoop(t *testing.T) {
	cart := NewCart("user-1")
	cart.Add(milk(2))

	cart.Remove("ghost")

	assert.Len(t, cart.Items, 1)
}

func TestCart_UpdateQuantity(t *testing.T) {
	cart := NewCart("user-1")
	cart.Add(milk(2))

	ok := cart.UpdateQuantity("p1", 5)

	assert.True(t, ok)
	assert.Equal(t, 5, cart.TotalQuantity)
	assert.Equal(t, float64(125000), cart.TotalPrice)
}

func TestCart_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	cart := NewCart("user-1")
	cart.Add(milk(2))

	ok := cart.UpdateQuantity("p1", 0)

	assert.True(t, ok)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalPrice)
}

func TestCart_UpdateQuantity_MissingProduct(t *testing.T) {
	cart := NewCart("user-1")

	assert.False(t, cart.UpdateQuantity("ghost", 2))
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart("user-1")
	cart.Add(milk(2))
	cart.Add(yogurt(1))

	cart.Clear()

	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalQuantity)
	assert.Zero(t, cart.TotalPrice)
}
