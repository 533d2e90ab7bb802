package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PartnerCategory string

const (
	PartnerCategoryDefi           PartnerCategory = "DEFI"
	PartnerCategoryGaming         PartnerCategory = "GAMING"
	PartnerCategoryNFT            PartnerCategory = "NFT"
	PartnerCategoryInfrastructure PartnerCategory = "INFRASTRUCTURE"
	PartnerCategoryMerch          PartnerCategory = "MERCH"
	PartnerCategoryEducation      PartnerCategory = "EDUCATION"
)

// PartnerCategories is the fixed list served on /partners/categories.
var PartnerCategories = []PartnerCategory{
	PartnerCategoryDefi,
	PartnerCategoryGaming,
	PartnerCategoryNFT,
	PartnerCategoryInfrastructure,
	PartnerCategoryMerch,
	PartnerCategoryEducation,
}

type OfferUsageType string

const (
	OfferUsageSingle OfferUsageType = "SINGLE_USE"
	OfferUsageMulti  OfferUsageType = "MULTI_USE"
)

// PointTiers is the fixed set of point costs an offer may carry.
var PointTiers = []int64{2000, 4000, 6000, 8000, 10000}

func ValidPointTier(tier int64) bool {
	for _, t := range PointTiers {
		if t == tier {
			return true
		}
	}
	return false
}

type Partner struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name             string          `json:"name"`
	Slug             string          `gorm:"uniqueIndex" json:"slug"`
	Description      *string         `json:"description,omitempty"`
	Website          *string         `json:"website,omitempty"`
	LogoURL          *string         `json:"logo_url,omitempty"`
	Category         PartnerCategory `json:"category"`
	IsActive         bool            `json:"is_active"`
	TotalRedemptions int64           `json:"total_redemptions"`
	Offers           []Offer         `gorm:"foreignKey:PartnerID" json:"offers,omitempty"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"deleted_at"`
}

type Offer struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PartnerID          uuid.UUID        `gorm:"index" json:"partner_id"`
	PointTier          int64            `json:"point_tier"`
	Title              string           `json:"title"`
	Description        *string          `json:"description,omitempty"`
	Terms              *string          `json:"terms,omitempty"`
	DiscountCode       string           `json:"-"`
	DiscountPercent    *decimal.Decimal `gorm:"type:decimal(5,2)" json:"discount_percent,omitempty"`
	UsageType          OfferUsageType   `json:"usage_type"`
	MaxRedemptions     *int64           `json:"max_redemptions,omitempty"`
	CurrentRedemptions int64            `json:"current_redemptions"`
	ExpiresAt          time.Time        `json:"expires_at"`
	IsActive           bool             `json:"is_active"`
	CreatedAt          time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt   `gorm:"index" json:"deleted_at"`
}

// Expired reports whether the offer's expiry has passed. Expiry is always
// evaluated against the caller's clock, never a stored flag.
func (o *Offer) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// Exhausted reports whether the redemption cap is reached. A nil cap means
// unlimited redemptions.
func (o *Offer) Exhausted() bool {
	return o.MaxRedemptions != nil && o.CurrentRedemptions >= *o.MaxRedemptions
}

// Redeemable is the derived eligibility view of a single offer, ignoring the
// owning partner's state and the caller's balance.
func (o *Offer) Redeemable(now time.Time) bool {
	return o.IsActive && !o.Expired(now) && !o.Exhausted()
}

// ActiveOffers computes the offers exposed on public partner listings. The
// result is derived per call since it depends on the clock and counters.
func (p *Partner) ActiveOffers(now time.Time) []Offer {
	offers := make([]Offer, 0, len(p.Offers))
	for _, offer := range p.Offers {
		if offer.Redeemable(now) {
			offers = append(offers, offer)
		}
	}
	return offers
}

type PartnerCreateRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Slug        string          `json:"slug" validate:"required,max=100,lowercase"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=1000"`
	Website     *string         `json:"website,omitempty" validate:"omitempty,url"`
	LogoURL     *string         `json:"logo_url,omitempty" validate:"omitempty,url"`
	Category    PartnerCategory `json:"category" validate:"required,oneof=DEFI GAMING NFT INFRASTRUCTURE MERCH EDUCATION"`
	IsActive    *bool           `json:"is_active,omitempty"`
}

type PartnerUpdateRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	Website     *string          `json:"website,omitempty" validate:"omitempty,url"`
	LogoURL     *string          `json:"logo_url,omitempty" validate:"omitempty,url"`
	Category    *PartnerCategory `json:"category,omitempty" validate:"omitempty,oneof=DEFI GAMING NFT INFRASTRUCTURE MERCH EDUCATION"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

type OfferCreateRequest struct {
	PointTier       int64            `json:"point_tier" validate:"required"`
	Title           string           `json:"title" validate:"required,max=255"`
	Description     *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	Terms           *string          `json:"terms,omitempty" validate:"omitempty,max=2000"`
	DiscountCode    string           `json:"discount_code" validate:"required,max=50"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty" validate:"omitempty"`
	UsageType       OfferUsageType   `json:"usage_type" validate:"required,oneof=SINGLE_USE MULTI_USE"`
	MaxRedemptions  *int64           `json:"max_redemptions,omitempty" validate:"omitempty,min=1"`
	ExpiresAt       time.Time        `json:"expires_at" validate:"required"`
}

type OfferUpdateRequest struct {
	PointTier       *int64           `json:"point_tier,omitempty"`
	Title           *string          `json:"title,omitempty" validate:"omitempty,max=255"`
	Description     *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	Terms           *string          `json:"terms,omitempty" validate:"omitempty,max=2000"`
	DiscountCode    *string          `json:"discount_code,omitempty" validate:"omitempty,max=50"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	MaxRedemptions  *int64           `json:"max_redemptions,omitempty" validate:"omitempty,min=1"`
	ExpiresAt       *time.Time       `json:"expires_at,omitempty"`
	IsActive        *bool            `json:"is_active,omitempty"`
}

// PartnerView is the public listing shape: partner metadata plus the derived
// active-offer view, never the raw offer list.
type PartnerView struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	Description      *string         `json:"description,omitempty"`
	Website          *string         `json:"website,omitempty"`
	LogoURL          *string         `json:"logo_url,omitempty"`
	Category         PartnerCategory `json:"category"`
	TotalRedemptions int64           `json:"total_redemptions"`
	Offers           []Offer         `json:"offers"`
}
