package dto

import "github.com/jetpack-ops/jetpack/internal/domain"

// UserListResponse is the users tab payload. ReadOnly mirrors the viewer's
// layout so the client can suppress management actions.
type UserListResponse struct {
	Users    []UserResponse       `json:"users"`
	Invites  []InvitationResponse `json:"invites,omitempty"`
	ReadOnly bool                 `json:"read_only"`
}

// NewUserList maps domain users into the list payload.
func NewUserList(users []domain.User, invites []domain.Invitation, readOnly bool) UserListResponse {
	out := UserListResponse{
		Users:    make([]UserResponse, 0, len(users)),
		ReadOnly: readOnly,
	}
	for i := range users {
		out.Users = append(out.Users, NewUserResponse(&users[i]))
	}
	for i := range invites {
		out.Invites = append(out.Invites, NewInvitationResponse(&invites[i]))
	}
	return out
}
