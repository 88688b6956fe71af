package upstream

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentSnapshot is the raw read-only aggregate returned by the data
// service for one shipment. It is fetched whole and never partially
// updated.
type ShipmentSnapshot struct {
	ID             string `json:"id"`
	BrandID        string `json:"brand_id"`
	OrderNumber    string `json:"order_number"`
	TrackingNumber string `json:"tracking_number"`
	Status         string `json:"status"`

	Customer ShipmentCustomer `json:"customer"`
	Package  ShipmentPackage  `json:"package"`

	CreatedAt   *time.Time `json:"created_at"`
	PickedAt    *time.Time `json:"picked_at"`
	PackedAt    *time.Time `json:"packed_at"`
	LabeledAt   *time.Time `json:"labeled_at"`
	InTransitAt *time.Time `json:"in_transit_at"`
	DeliveredAt *time.Time `json:"delivered_at"`

	Events       []ShipmentEvent `json:"events"`
	Items        []ShipmentItem  `json:"items"`
	Transactions []Transaction   `json:"transactions"`
	Returns      []ReturnRecord  `json:"returns"`

	IsInternational bool       `json:"is_international"`
	LastUpdateAt    *time.Time `json:"last_update_at"`
}

// ShipmentCustomer holds recipient details.
type ShipmentCustomer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Country string `json:"country"`
}

// ShipmentPackage holds physical package details. Weight is in ounces as
// delivered by the data service.
type ShipmentPackage struct {
	Carrier  string  `json:"carrier"`
	Service  string  `json:"service"`
	WeightOz float64 `json:"weight_oz"`
	LengthIn float64 `json:"length_in"`
	WidthIn  float64 `json:"width_in"`
	HeightIn float64 `json:"height_in"`
}

// ShipmentEvent is one discrete timeline entry, already chronological.
type ShipmentEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

// ShipmentItem is one line item in the shipment.
type ShipmentItem struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Transaction is one charge or credit tied to the shipment.
type Transaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ChargedAt   time.Time       `json:"charged_at"`
}

// ReturnRecord describes a return tied to the shipment.
type ReturnRecord struct {
	ID        string     `json:"id"`
	Status    string     `json:"status"`
	Reason    string     `json:"reason"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at"`
}

// ClaimEligibility carries the authoritative per-type eligibility flags plus
// the context fields used for tooltip wording.
type ClaimEligibility struct {
	LostInTransit       bool `json:"lost_in_transit"`
	Damaged             bool `json:"damaged"`
	WrongItem           bool `json:"wrong_item"`
	MissingItem         bool `json:"missing_item"`
	IsDelivered         bool `json:"is_delivered"`
	IsInternational     bool `json:"is_international"`
	DaysSinceLastUpdate int  `json:"days_since_last_update"`
}

// Commission is one commission line from the billing system.
type Commission struct {
	ID        string          `json:"id"`
	BrandID   string          `json:"brand_id"`
	Period    string          `json:"period"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// InvoiceFile is one downloadable artifact attached to an invoice.
type InvoiceFile struct {
	ID        string    `json:"id"`
	InvoiceID string    `json:"invoice_id"`
	FileName  string    `json:"file_name"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// SyncResult reports the outcome of a triggered sync.
type SyncResult struct {
	JobID     string `json:"job_id"`
	Shipments int    `json:"shipments"`
	Orders    int    `json:"orders"`
}
