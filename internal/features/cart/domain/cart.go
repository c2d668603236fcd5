package domain

// CartItem is one product line in a user's cart.
type CartItem struct {
	// ProductID identifies the product.
	ProductID string `json:"product_id"`
	// Name is the product display name, snapshotted at add time.
	Name string `json:"name"`
	// Price is the unit price in VND, snapshotted at add time.
	Price float64 `json:"price"`
	// Quantity is the number of units.
	Quantity int `json:"quantity"`
	// Image is the product image URL.
	Image string `json:"image"`
}

// Cart is a user's shopping cart. Totals are derived from the items and
// recomputed on every mutation; they are never stored independently.
type Cart struct {
	UserID        string     `json:"user_id"`
	Items         []CartItem `json:"items"`
	TotalQuantity int        `json:"total_quantity"`
	TotalPrice    float64    `json:"total_price"`
}

// NewCart returns an empty cart for the user.
func NewCart(userID string) *Cart {
	return &Cart{UserID: userID, Items: []CartItem{}}
}

// Add puts an item into the cart. An item with the same product ID merges
// into the existing line by summing quantities.
func (c *Cart) Add(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			c.recompute()
			return
		}
	}
	c.Items = append(c.Items, item)
	c.recompute()
}

// Remove deletes the line with the given product ID. Removing an absent
// product is a no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			break
		}
	}
	c.recompute()
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero
// or less removes the line. Returns false when the product is not in the
// cart.
func (c *Cart) UpdateQuantity(productID string, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
		c.recompute()
		return true
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.recompute()
}

func (c *Cart) recompute() {
	c.TotalQuantity = 0
	c.TotalPrice = 0
	for _, item := range c.Items {
		c.TotalQuantity += item.Quantity
		c.TotalPrice += item.Price * float64(item.Quantity)
	}
}
