package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ConnectUserRoleUser  = "USER"
	ConnectUserRoleAdmin = "ADMIN"
)

// ConnectUser is the identity payload of the external account service. Auth,
// sessions and the admin claim live there; this service only consumes them.
type ConnectUser struct {
	ID         uuid.UUID  `json:"id,omitempty"`
	Email      string     `json:"email,omitempty"`
	Username   string     `json:"username,omitempty"`
	GlobalRole string     `json:"global_role,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

func (u *ConnectUser) IsAdmin() bool {
	return u.GlobalRole == ConnectUserRoleAdmin
}
