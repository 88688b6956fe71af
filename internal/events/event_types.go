package events

import (
	"time"

	"github.com/jetpack-ops/jetpack/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventInviteCreated  EventType = "invite_created"
	EventInviteAccepted EventType = "invite_accepted"
	EventBrandCreated   EventType = "brand_created"
	EventClaimSubmitted EventType = "claim_submitted"
	EventClaimDecided   EventType = "claim_decided"
	EventSyncCompleted  EventType = "sync_completed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// InviteCreatedPayload payload.
type InviteCreatedPayload struct {
	InvitationID string          `json:"invitation_id"`
	Email        string          `json:"email"`
	Role         domain.UserRole `json:"role"`
	Token        string          `json:"token"`
}

// InviteAcceptedPayload payload.
type InviteAcceptedPayload struct {
	InvitationID string `json:"invitation_id"`
	UserID       string `json:"user_id"`
}

// BrandCreatedPayload payload.
type BrandCreatedPayload struct {
	BrandID     string `json:"brand_id"`
	CompanyName string `json:"company_name"`
	ShortCode   string `json:"short_code"`
}

// ClaimSubmittedPayload payload.
type ClaimSubmittedPayload struct {
	ClaimID    string           `json:"claim_id"`
	ShipmentID string           `json:"shipment_id"`
	ClaimType  domain.ClaimType `json:"claim_type"`
}

// ClaimDecidedPayload payload.
type ClaimDecidedPayload struct {
	ClaimID    string             `json:"claim_id"`
	ShipmentID string             `json:"shipment_id"`
	Status     domain.ClaimStatus `json:"status"`
}

// SyncCompletedPayload payload.
type SyncCompletedPayload struct {
	JobID     string `json:"job_id"`
	Shipments int    `json:"shipments"`
	Orders    int    `json:"orders"`
	Failed    bool   `json:"failed"`
}
