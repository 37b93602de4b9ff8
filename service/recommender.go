package service

import "invest-appraisal/domain"

// Recommend picks the most favorable tier whose criteria all hold. It works on
// the raw metrics; a missing IRR or payback fails every criterion that uses it.
func Recommend(npv float64, irr domain.IRR, roi float64, payback domain.Payback, ratePercent float64) domain.Recommendation {
	rate := ratePercent / 100

	irrAbove := func(margin float64) bool {
		return irr.Computable && irr.Rate > rate+margin
	}
	paybackWithin := func(years float64) bool {
		return payback.Recoverable && payback.Years <= years
	}

	strong := npv > 0 && irrAbove(StrongIRRMargin) && roi > StrongMinROI && paybackWithin(StrongMaxPayback)
	standard := npv > 0 && irrAbove(0) && roi > StandardMinROI && paybackWithin(StandardMaxPayback)

	switch {
	case strong:
		return domain.Recommendation{Tier: domain.TierHighlyRecommended, Text: "Project highly recommended"}
	case standard:
		return domain.Recommendation{Tier: domain.TierRecommended, Text: "Project recommended"}
	case npv > 0:
		return domain.Recommendation{Tier: domain.TierStudyNeeded, Text: "Project needs further study"}
	default:
		return domain.Recommendation{Tier: domain.TierNotRecommended, Text: "Project not recommended"}
	}
}
