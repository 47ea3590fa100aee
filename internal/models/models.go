// internal/models/models.go
package models

import (
	"time"
)

type Category string

const (
	CategoryJewelry    Category = "Jewelry"
	CategoryJewellery  Category = "Jewellery"
	CategorySarees     Category = "Sarees"
	CategoryStationery Category = "Stationery"
)

type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "COD"
	PaymentCard PaymentMethod = "Card"
	PaymentUPI  PaymentMethod = "UPI"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

type ContactStatus string

const (
	ContactNew     ContactStatus = "new"
	ContactRead    ContactStatus = "read"
	ContactReplied ContactStatus = "replied"
)

type Ratings struct {
	Average float64 `json:"average" bson:"average" validate:"gte=0,lte=5"`
	Count   int     `json:"count" bson:"count" validate:"gte=0"`
}

type Product struct {
	ID             string     `json:"_id" bson:"_id"`
	Name           string     `json:"name" bson:"name" validate:"required"`
	Description    string     `json:"description" bson:"description" validate:"required"`
	Price          float64    `json:"price" bson:"price" validate:"gte=0"`
	OriginalPrice  *float64   `json:"originalPrice,omitempty" bson:"originalPrice,omitempty" validate:"omitempty,gte=0"`
	Category       Category   `json:"category" bson:"category" validate:"required,oneof=Jewelry Jewellery Sarees Stationery"`
	Subcategory    string     `json:"subcategory,omitempty" bson:"subcategory,omitempty"`
	Images         []string   `json:"images" bson:"images"`
	Features       []string   `json:"features,omitempty" bson:"features,omitempty"`
	Stock          int        `json:"stock" bson:"stock" validate:"gte=0"`
	Ratings        Ratings    `json:"ratings" bson:"ratings"`
	Featured       bool       `json:"featured" bson:"featured"`
	NewArrival     bool       `json:"newArrival" bson:"newArrival"`
	NewArrivalDate *time.Time `json:"newArrivalDate,omitempty" bson:"newArrivalDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt" bson:"createdAt"`

	// Seq is the store-assigned insertion order used to break sort ties.
	Seq int64 `json:"-" bson:"seq"`
}

type Address struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Pincode string `json:"pincode" bson:"pincode"`
	Country string `json:"country" bson:"country"`
}

type User struct {
	ID           string    `json:"_id" bson:"_id"`
	Name         string    `json:"name" bson:"name" validate:"required"`
	Email        string    `json:"email" bson:"email" validate:"required,email"`
	PasswordHash string    `json:"-" bson:"password"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Address      *Address  `json:"address,omitempty" bson:"address,omitempty"`
	IsAdmin      bool      `json:"isAdmin" bson:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

type CartItem struct {
	Product string `json:"product" bson:"product" validate:"required"`
	// Name is the product name when the line was last added, kept so a
	// line can still be named after the product is deleted.
	Name     string `json:"name,omitempty" bson:"name,omitempty"`
	Quantity int    `json:"quantity" bson:"quantity" validate:"min=1"`
}

// Cart holds at most one line per product.
type Cart struct {
	ID        string     `json:"_id" bson:"_id"`
	User      string     `json:"user" bson:"user"`
	Items     []CartItem `json:"items" bson:"items"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Add increments the quantity of an existing line or appends a new one.
// A non-empty name replaces the line's recorded product name.
func (c *Cart) Add(productID, name string, quantity int) {
	for i := range c.Items {
		if c.Items[i].Product == productID {
			c.Items[i].Quantity += quantity
			if name != "" {
				c.Items[i].Name = name
			}
			return
		}
	}
	c.Items = append(c.Items, CartItem{Product: productID, Name: name, Quantity: quantity})
}

// Set replaces the quantity of a line; a quantity below one removes it.
func (c *Cart) Set(productID string, quantity int) bool {
	if quantity < 1 {
		return c.Remove(productID)
	}
	for i := range c.Items {
		if c.Items[i].Product == productID {
			c.Items[i].Quantity = quantity
			return true
		}
	}
	return false
}

func (c *Cart) Remove(productID string) bool {
	for i := range c.Items {
		if c.Items[i].Product == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// OrderItem is a snapshot of the product taken at purchase time.
type OrderItem struct {
	Product  string  `json:"product" bson:"product"`
	Name     string  `json:"name" bson:"name"`
	Quantity int     `json:"quantity" bson:"quantity"`
	Price    float64 `json:"price" bson:"price"`
}

type ShippingAddress struct {
	Name    string `json:"name" bson:"name" validate:"required"`
	Phone   string `json:"phone" bson:"phone" validate:"required"`
	Street  string `json:"street" bson:"street" validate:"required"`
	City    string `json:"city" bson:"city" validate:"required"`
	State   string `json:"state" bson:"state" validate:"required"`
	Pincode string `json:"pincode" bson:"pincode" validate:"required"`
	Country string `json:"country" bson:"country" validate:"required"`
}

type Order struct {
	ID              string          `json:"_id" bson:"_id"`
	User            string          `json:"user" bson:"user"`
	Items           []OrderItem     `json:"items" bson:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod" bson:"paymentMethod"`
	TotalAmount     float64         `json:"totalAmount" bson:"totalAmount"`
	Status          OrderStatus     `json:"status" bson:"status"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
}

// Buyer is the subset of a user shown next to an order in admin listings.
type Buyer struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type OrderWithBuyer struct {
	Order
	Buyer *Buyer `json:"buyer,omitempty"`
}

type ContactMessage struct {
	ID        string        `json:"_id" bson:"_id"`
	Name      string        `json:"name" bson:"name" validate:"required"`
	Email     string        `json:"email" bson:"email" validate:"required"`
	Phone     string        `json:"phone" bson:"phone"`
	Subject   string        `json:"subject" bson:"subject" validate:"required"`
	Message   string        `json:"message" bson:"message" validate:"required"`
	Status    ContactStatus `json:"status" bson:"status"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}

// Request DTOs

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Phone           string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Address  *Address `json:"address"`
	Password string   `json:"password"`
}

type AddCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CreateOrderRequest struct {
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type UpdateContactStatusRequest struct {
	Status string `json:"status"`
}
