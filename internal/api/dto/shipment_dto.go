package dto

import (
	"time"

	"github.com/jetpack-ops/jetpack/internal/claims"
	"github.com/jetpack-ops/jetpack/internal/domain"
	"github.com/jetpack-ops/jetpack/internal/timeline"
	"github.com/jetpack-ops/jetpack/internal/tracking"
	"github.com/jetpack-ops/jetpack/internal/upstream"
)

// TrackingView is the resolved tracking block: detected carrier plus its web
// tracking link, or a bare number when no carrier matched.
type TrackingView struct {
	Number  string           `json:"number"`
	Carrier tracking.Carrier `json:"carrier,omitempty"`
	URL     string           `json:"url,omitempty"`
}

// PackageView is the physical package block with the weight rendered for
// display.
type PackageView struct {
	Carrier       string `json:"carrier"`
	Service       string `json:"service"`
	WeightDisplay string `json:"weight"`
	Dimensions    string `json:"dimensions"`
}

// TransactionView is one charge with the amount rendered as a fixed-point
// string.
type TransactionView struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	ChargedAt   time.Time `json:"charged_at"`
}

// ClaimTicketView is a submitted claim as shown in the drawer.
type ClaimTicketView struct {
	ID         string             `json:"id"`
	Type       domain.ClaimType   `json:"type"`
	Status     domain.ClaimStatus `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	ResolvedAt *time.Time         `json:"resolved_at,omitempty"`
}

// ShipmentDetailsResponse is the full drawer view model: one immutable
// snapshot per fetch.
type ShipmentDetailsResponse struct {
	ID           string                    `json:"id"`
	BrandID      string                    `json:"brand_id"`
	OrderNumber  string                    `json:"order_number"`
	Status       string                    `json:"status"`
	Customer     upstream.ShipmentCustomer `json:"customer"`
	Tracking     TrackingView              `json:"tracking"`
	Package      PackageView               `json:"package"`
	Timeline     timeline.Progress         `json:"timeline"`
	Items        []upstream.ShipmentItem   `json:"items"`
	Transactions []TransactionView         `json:"transactions"`
	TotalCharged string                    `json:"total_charged"`
	Returns      []upstream.ReturnRecord   `json:"returns"`
	Claims       []ClaimTicketView         `json:"claims"`
}

// ClaimEligibilityResponse wraps the gate outcome.
type ClaimEligibilityResponse struct {
	ShipmentID string        `json:"shipment_id"`
	Result     claims.Result `json:"result"`
}

// SubmitClaimRequest payload for filing a claim.
type SubmitClaimRequest struct {
	Type        domain.ClaimType `json:"type"`
	Description string           `json:"description"`
}

// UpdateClaimStatusRequest payload for moving a claim through review.
type UpdateClaimStatusRequest struct {
	Status domain.ClaimStatus `json:"status"`
}

// CommissionView is one commission line with a fixed-point amount.
type CommissionView struct {
	ID      string `json:"id"`
	BrandID string `json:"brand_id"`
	Period  string `json:"period"`
	Amount  string `json:"amount"`
}
