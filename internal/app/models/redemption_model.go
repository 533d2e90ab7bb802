package models

import (
	"time"

	"github.com/google/uuid"
)

type RedemptionStatus string

const (
	RedemptionStatusActive    RedemptionStatus = "ACTIVE"
	RedemptionStatusUsed      RedemptionStatus = "USED"
	RedemptionStatusExpired   RedemptionStatus = "EXPIRED"
	RedemptionStatusCancelled RedemptionStatus = "CANCELLED"
)

// Redemption is the audit record of one points-for-code exchange. Offer and
// partner display fields are snapshots taken at redemption time; the record
// stays self-describing even if the catalog is edited or removed later.
// Rows are never hard-deleted and only Status, UsedAt and MarkedUsedBy may
// change after creation.
type Redemption struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AccountID          uuid.UUID        `gorm:"index" json:"account_id"`
	PartnerID          uuid.UUID        `gorm:"index" json:"partner_id"`
	OfferID            uuid.UUID        `gorm:"index" json:"offer_id"`
	PointsUsed         int64            `json:"points_used"`
	DiscountCode       string           `gorm:"uniqueIndex" json:"discount_code"`
	OfferTitle         string           `json:"offer_title"`
	OfferDescription   *string          `json:"offer_description,omitempty"`
	PartnerName        string           `json:"partner_name"`
	PartnerWebsite     *string          `json:"partner_website,omitempty"`
	Status             RedemptionStatus `json:"status"`
	RedeemedAt         time.Time        `gorm:"autoCreateTime" json:"redeemed_at"`
	ExpiresAt          time.Time        `json:"expires_at"`
	UsedAt             *time.Time       `json:"used_at,omitempty"`
	MarkedUsedBy       *string          `json:"marked_used_by,omitempty"`
	PointsBalanceAfter int64            `json:"points_balance_after"`
}

// EffectiveStatus derives the status a reader must act on. A stored ACTIVE
// past its expiry is EXPIRED without waiting for any background job to flip
// the row. USED, EXPIRED and CANCELLED are terminal.
func (r *Redemption) EffectiveStatus(now time.Time) RedemptionStatus {
	if r.Status == RedemptionStatusActive && !now.Before(r.ExpiresAt) {
		return RedemptionStatusExpired
	}
	return r.Status
}

// Usable reports whether a partner terminal may still honor this code.
func (r *Redemption) Usable(now time.Time) bool {
	return r.EffectiveStatus(now) == RedemptionStatusActive
}

type RedeemRequest struct {
	OfferID string `json:"offer_id" validate:"required,uuid"`
}

type MarkUsedRequest struct {
	MarkedBy string `json:"marked_by" validate:"required,max=255"`
}

// RedeemResult is the success payload of the redemption workflow.
type RedeemResult struct {
	Redemption       *Redemption `json:"redemption"`
	NewPointsBalance int64       `json:"new_points_balance"`
}

// RedemptionSummary is the redacted view returned to partner terminals on
// code validation: enough to honor the discount, nothing about the holder.
type RedemptionSummary struct {
	ID           uuid.UUID        `json:"id"`
	DiscountCode string           `json:"discount_code"`
	OfferTitle   string           `json:"offer_title"`
	PartnerName  string           `json:"partner_name"`
	Status       RedemptionStatus `json:"status"`
	RedeemedAt   time.Time        `json:"redeemed_at"`
	ExpiresAt    time.Time        `json:"expires_at"`
}

// Summary redacts the redemption for partner-facing responses.
func (r *Redemption) Summary(now time.Time) *RedemptionSummary {
	return &RedemptionSummary{
		ID:           r.ID,
		DiscountCode: r.DiscountCode,
		OfferTitle:   r.OfferTitle,
		PartnerName:  r.PartnerName,
		Status:       r.EffectiveStatus(now),
		RedeemedAt:   r.RedeemedAt,
		ExpiresAt:    r.ExpiresAt,
	}
}
