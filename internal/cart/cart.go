// Package cart models a storefront shopping cart as an explicit serializable
// aggregate and formats it into a WhatsApp checkout message.
package cart

import (
	"fmt"
	"net/url"
	"strings"
)

// Item is a single cart line.
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// Cart is a value object owned by the client session. Mutations keep at most
// one line per product id.
type Cart struct {
	Items []Item `json:"items"`
}

// Add appends an item, merging quantities when the product is already present.
func (c *Cart) Add(item Item) {
	if item.Qty <= 0 {
		item.Qty = 1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Qty += item.Qty
			return
		}
	}
	c.Items = append(c.Items, item)
}

// Remove drops the line for the given product id, if present.
func (c *Cart) Remove(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SetQty sets the quantity for a line. A quantity of zero or less removes it.
func (c *Cart) SetQty(productID string, n int) {
	if n <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Qty = n
			return
		}
	}
}

// Total returns the cart total.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Qty)
	}
	return total
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

// OrderMessage renders the cart into the WhatsApp order text the store owner
// receives, with blank customer-detail lines for the buyer to fill in.
func (c *Cart) OrderMessage(currency string) string {
	var b strings.Builder
	b.WriteString("*New Order from Rich Tym Luxe*\n\n")
	for _, item := range c.Items {
		fmt.Fprintf(&b, "- %s x%d = %s %.2f\n", item.Name, item.Qty, currency, item.Price*float64(item.Qty))
	}
	fmt.Fprintf(&b, "\n*Total: %s %.2f*\n\n", currency, c.Total())
	b.WriteString("--- Customer Details ---\n")
	b.WriteString("Name: \n")
	b.WriteString("Address: \n")
	b.WriteString("Phone: ")
	return b.String()
}

// CheckoutURL builds the wa.me link that opens a chat with the store's order
// number and the rendered cart message prefilled.
func (c *Cart) CheckoutURL(phone, currency string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(c.OrderMessage(currency)))
}
