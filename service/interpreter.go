package service

import (
	"math"

	"invest-appraisal/domain"
)

// InterpretNPV grades a net present value. Only an exact zero is neutral.
func InterpretNPV(npv float64) domain.Interpretation {
	switch {
	case npv > 0:
		return domain.Interpretation{
			Code: "NPV_POSITIVE",
			Text: "Positive NPV: the project is profitable and creates economic value.",
			Band: domain.BandPositive,
		}
	case npv == 0:
		return domain.Interpretation{
			Code: "NPV_ZERO",
			Text: "Zero NPV: the project breaks even, no value is created or destroyed.",
			Band: domain.BandNeutral,
		}
	default:
		return domain.Interpretation{
			Code: "NPV_NEGATIVE",
			Text: "Negative NPV: the project is not profitable and destroys value.",
			Band: domain.BandNegative,
		}
	}
}

// InterpretIRR grades an internal rate of return against the discount rate.
func InterpretIRR(irr domain.IRR, ratePercent float64) domain.Interpretation {
	if !irr.Computable || math.IsNaN(irr.Rate) || math.IsInf(irr.Rate, 0) {
		return domain.Interpretation{
			Code: "IRR_NOT_COMPUTABLE",
			Text: "IRR not computable: the cash flows never change the sign of the NPV.",
			Band: domain.BandNegative,
		}
	}

	rate := ratePercent / 100
	switch {
	case irr.Rate > rate+IRRExcellentMargin:
		return domain.Interpretation{
			Code: "IRR_EXCELLENT",
			Text: "Excellent IRR: the return is well above the required rate.",
			Band: domain.BandExcellent,
		}
	case irr.Rate > rate:
		return domain.Interpretation{
			Code: "IRR_SATISFACTORY",
			Text: "Satisfactory IRR: the return is above the required rate.",
			Band: domain.BandPositive,
		}
	case math.Abs(irr.Rate-rate) < IRREqualTolerance:
		return domain.Interpretation{
			Code: "IRR_BREAK_EVEN",
			Text: "Break-even IRR: the return matches the required rate.",
			Band: domain.BandNeutral,
		}
	default:
		return domain.Interpretation{
			Code: "IRR_INSUFFICIENT",
			Text: "Insufficient IRR: the return is below the required rate.",
			Band: domain.BandNegative,
		}
	}
}

// InterpretROI grades a return on investment given as a fraction.
func InterpretROI(roi float64) domain.Interpretation {
	switch {
	case roi > ROIExceptional:
		return domain.Interpretation{
			Code: "ROI_EXCEPTIONAL",
			Text: "Exceptional ROI: gains exceed 100% of the investment.",
			Band: domain.BandExcellent,
		}
	case roi > ROIVeryGood:
		return domain.Interpretation{
			Code: "ROI_VERY_GOOD",
			Text: "Very good ROI: substantial gains above 50%.",
			Band: domain.BandPositive,
		}
	case roi > ROIAcceptable:
		return domain.Interpretation{
			Code: "ROI_SATISFACTORY",
			Text: "Satisfactory ROI: acceptable gains above 20%.",
			Band: domain.BandPositive,
		}
	case roi > 0:
		return domain.Interpretation{
			Code: "ROI_LOW",
			Text: "Low ROI: gains are positive but modest.",
			Band: domain.BandWeak,
		}
	default:
		return domain.Interpretation{
			Code: "ROI_NEGATIVE",
			Text: "Negative ROI: the investment loses money.",
			Band: domain.BandNegative,
		}
	}
}

// InterpretPayback grades a discounted payback period.
func InterpretPayback(p domain.Payback) domain.Interpretation {
	if !p.Recoverable || math.IsNaN(p.Years) || math.IsInf(p.Years, 0) {
		return domain.Interpretation{
			Code: "PAYBACK_IMPOSSIBLE",
			Text: "Recovery impossible: discounted cash flows never cover the investment.",
			Band: domain.BandNegative,
		}
	}

	switch {
	case p.Years <= PaybackFast:
		return domain.Interpretation{
			Code: "PAYBACK_VERY_FAST",
			Text: "Very fast recovery: very low liquidity risk.",
			Band: domain.BandExcellent,
		}
	case p.Years <= PaybackAcceptable:
		return domain.Interpretation{
			Code: "PAYBACK_ACCEPTABLE",
			Text: "Acceptable recovery: moderate liquidity risk.",
			Band: domain.BandPositive,
		}
	case p.Years <= PaybackSlow:
		return domain.Interpretation{
			Code: "PAYBACK_SLOW",
			Text: "Slow recovery: high liquidity risk.",
			Band: domain.BandWeak,
		}
	default:
		return domain.Interpretation{
			Code: "PAYBACK_VERY_SLOW",
			Text: "Very slow recovery: very high liquidity risk.",
			Band: domain.BandNegative,
		}
	}
}

func Interpret(m domain.Metrics, ratePercent float64) domain.Interpretations {
	return domain.Interpretations{
		NPV:     InterpretNPV(m.NPV),
		IRR:     InterpretIRR(m.IRR, ratePercent),
		ROI:     InterpretROI(m.ROI),
		Payback: InterpretPayback(m.Payback),
	}
}
