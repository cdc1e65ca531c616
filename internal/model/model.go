// Package model contains the read-side shapes rendered by the storefront views.
// No behavior lives here.
package model

import "time"

// Product is a catalog entry. Status reports availability.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Code        string    `json:"code"`
	Price       float64   `json:"price"`
	Status      bool      `json:"status"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	Thumbnails  []string  `json:"thumbnails"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CartItem is one product line in a cart, with the product populated.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is price times quantity for the line.
func (i CartItem) Subtotal() float64 { return i.Product.Price * float64(i.Quantity) }

type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Total sums the line subtotals.
func (c Cart) Total() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.Subtotal()
	}
	return total
}

// User is an account as listed on the admin users page. Credentials never leave storage.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	Role      string    `json:"role"`
	CartID    string    `json:"cart_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
