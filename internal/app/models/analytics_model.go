package models

// StatusCount is one grouped row of the redemption rollup query.
type StatusCount struct {
	Status     RedemptionStatus `json:"status"`
	Count      int64            `json:"count"`
	PointsUsed int64            `json:"points_used"`
}

type PartnerAnalytics struct {
	PartnerID        string        `json:"partner_id"`
	PartnerName      string        `json:"partner_name"`
	TotalRedemptions int64         `json:"total_redemptions"`
	TotalPointsUsed  int64         `json:"total_points_used"`
	ByStatus         []StatusCount `json:"by_status"`
}

// BuildPartnerAnalytics folds grouped rollup rows into the report payload.
// Totals count every status; cancelled redemptions are excluded from the
// points sum since their debit was never kept.
func BuildPartnerAnalytics(partnerID, partnerName string, rows []StatusCount) *PartnerAnalytics {
	analytics := &PartnerAnalytics{
		PartnerID:   partnerID,
		PartnerName: partnerName,
		ByStatus:    rows,
	}
	for _, row := range rows {
		analytics.TotalRedemptions += row.Count
		if row.Status != RedemptionStatusCancelled {
			analytics.TotalPointsUsed += row.PointsUsed
		}
	}
	return analytics
}
