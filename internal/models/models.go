package models

import "time"

const (
	OrderStatusNew        = "New"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

var OrderStatuses = []string{
	OrderStatusNew,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

const (
	CategoryLandscape = "Landscape"
	CategoryPortrait  = "Portrait"
	CategoryAbstract  = "Abstract"

	// CategoryAll is what the storefront sends when no category filter is selected.
	CategoryAll = "All"
)

var Categories = []string{CategoryLandscape, CategoryPortrait, CategoryAbstract}

type Artwork struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"   json:"id"`
	Title     string    `gorm:"not null"                      json:"title"`
	Artist    string    `gorm:"not null"                      json:"artist"`
	Price     float64   `gorm:"not null"                      json:"price"`
	Category  string    `gorm:"index;not null"                json:"category"`
	ImageURL  string    `gorm:"not null"                      json:"imageUrl"`
	Sold      bool      `gorm:"not null;default:false"        json:"sold"`
	CreatedAt time.Time `gorm:"index"                         json:"createdAt"`
}

type Customer struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

// Payment never carries the full card number or CVV.
type Payment struct {
	CardLast4 string `gorm:"size:4" json:"cardLast4"`
	Expiry    string `json:"expiry"`
}

// LineItem is a snapshot of an artwork taken when the order was placed.
type LineItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	ImageURL string  `json:"imageUrl"`
	Sold     bool    `json:"sold"`
}

type Order struct {
	ID        string     `gorm:"primaryKey;type:varchar(36)"         json:"id"`
	Customer  Customer   `gorm:"embedded;embeddedPrefix:customer_"   json:"customer"`
	Payment   Payment    `gorm:"embedded;embeddedPrefix:payment_"    json:"payment"`
	Items     []LineItem `gorm:"serializer:json;type:text"           json:"items"`
	Total     float64    `gorm:"not null"                            json:"total"`
	Status    string     `gorm:"index;not null"                      json:"status"`
	CreatedAt time.Time  `gorm:"index"                               json:"createdAt"`
}

// ArtworkIDs returns the non-empty artwork ids referenced by the order, in item order.
func (o *Order) ArtworkIDs() []string {
	ids := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		if it.ID != "" {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

func (o *Order) IsCancelled() bool { return o.Status == OrderStatusCancelled }
