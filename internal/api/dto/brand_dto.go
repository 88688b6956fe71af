package dto

import (
	"time"

	"github.com/jetpack-ops/jetpack/internal/domain"
)

// BrandRequest carries create/update fields for a brand client.
type BrandRequest struct {
	CompanyName    string  `json:"company_name"`
	ShipbobUserID  *string `json:"shipbob_user_id"`
	ShortCode      string  `json:"short_code"`
	BillingAddress *string `json:"billing_address"`
}

// BrandResponse is the admin view of a brand. The API token itself is never
// echoed back, only whether one is on file.
type BrandResponse struct {
	ID             string    `json:"id"`
	CompanyName    string    `json:"company_name"`
	ShipbobUserID  *string   `json:"shipbob_user_id,omitempty"`
	ShortCode      string    `json:"short_code"`
	HasToken       bool      `json:"has_token"`
	BillingAddress *string   `json:"billing_address,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewBrandResponse maps a domain brand to its admin view.
func NewBrandResponse(b *domain.Brand) BrandResponse {
	return BrandResponse{
		ID:             b.ID,
		CompanyName:    b.CompanyName,
		ShipbobUserID:  b.ShipbobUserID,
		ShortCode:      b.ShortCode,
		HasToken:       b.HasToken(),
		BillingAddress: b.BillingAddress,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// SetTokenRequest carries a new upstream API token for a brand.
type SetTokenRequest struct {
	Token string `json:"token"`
}

// TestConnectionResponse reports the outcome of an upstream token check.
type TestConnectionResponse struct {
	OK bool `json:"ok"`
}
