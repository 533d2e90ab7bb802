package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPartnerAnalytics(t *testing.T) {
	rows := []StatusCount{
		{Status: RedemptionStatusActive, Count: 3, PointsUsed: 6000},
		{Status: RedemptionStatusUsed, Count: 2, PointsUsed: 8000},
		{Status: RedemptionStatusExpired, Count: 1, PointsUsed: 2000},
		{Status: RedemptionStatusCancelled, Count: 4, PointsUsed: 16000},
	}

	analytics := BuildPartnerAnalytics("pid", "Acme", rows)

	assert.Equal(t, "pid", analytics.PartnerID)
	assert.Equal(t, "Acme", analytics.PartnerName)
	assert.Equal(t, int64(10), analytics.TotalRedemptions)
	// Cancelled debits were refunded; they never count toward points spent
	assert.Equal(t, int64(16000), analytics.TotalPointsUsed)
	assert.Len(t, analytics.ByStatus, 4)
}

func TestBuildPartnerAnalyticsEmpty(t *testing.T) {
	analytics := BuildPartnerAnalytics("pid", "Acme", nil)

	assert.Zero(t, analytics.TotalRedemptions)
	assert.Zero(t, analytics.TotalPointsUsed)
	assert.Empty(t, analytics.ByStatus)
}
