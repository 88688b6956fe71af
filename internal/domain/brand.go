package domain

import "time"

// Brand is a tenant company ("client" in some views) whose shipments the
// dashboard reports on. APIToken is write-only: it is never serialized back
// to callers, only the derived HasToken flag is.
type Brand struct {
	ID             string
	CompanyName    string
	ShipbobUserID  *string
	ShortCode      string
	APIToken       *string
	BillingAddress *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasToken reports whether an API token is stored for the brand.
func (b *Brand) HasToken() bool {
	return b.APIToken != nil && *b.APIToken != ""
}
