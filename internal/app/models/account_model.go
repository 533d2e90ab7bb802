package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Account struct {
	ConnectID uuid.UUID      `gorm:"type:uuid;primaryKey" json:"connect_id"`
	Points    int64          `json:"points"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

// Points entry reasons. Redemption debits are written exclusively by the
// redemption workflow; every other mutation goes through AdjustPoints.
const (
	PointsReasonRedemption       = "REDEMPTION"
	PointsReasonRedemptionRefund = "REDEMPTION_REFUND"
	PointsReasonAdminAward       = "ADMIN_AWARD"
	PointsReasonAdminRevoke      = "ADMIN_REVOKE"
)

// PointsEntry is an append-only ledger row. Amount is signed; BalanceAfter
// snapshots the account balance after the entry was applied, so the balance
// always equals the running sum of entries.
type PointsEntry struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AccountID    uuid.UUID      `gorm:"index" json:"account_id"`
	Amount       int64          `json:"amount"`
	BalanceAfter int64          `json:"balance_after"`
	Reason       string         `json:"reason"`
	RedemptionID *uuid.UUID     `json:"redemption_id,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

type PointsAdjustRequest struct {
	Amount int64  `json:"amount" validate:"required,ne=0"`
	Reason string `json:"reason" validate:"required,oneof=ADMIN_AWARD ADMIN_REVOKE"`
}
