package service

const (
	MinYears     = 3
	MaxYears     = 30
	DefaultYears = 7

	MaxInvestment   = 1_000_000_000_000.0 // 1 trillion
	MaxFlowAmount   = 1_000_000_000_000.0
	MaxDiscountRate = 1000.0 // 1000% per year

	// IRR search bracket and work limits.
	IRRLowerBound    = -0.99
	IRRUpperBound    = 5.0
	IRRTolerance     = 1e-6
	IRRMaxIterations = 100

	// IRR bands, as a margin over the discount rate.
	IRRExcellentMargin = 0.05
	IRREqualTolerance  = 0.001

	// ROI bands, as fractions of the investment.
	ROIExceptional = 1.0
	ROIVeryGood    = 0.5
	ROIAcceptable  = 0.2

	// Discounted payback bands, in years.
	PaybackFast       = 2.0
	PaybackAcceptable = 4.0
	PaybackSlow       = 6.0

	// Strong recommendation criteria.
	StrongIRRMargin  = 0.02
	StrongMinROI     = 0.3
	StrongMaxPayback = 4.0

	// Standard recommendation criteria.
	StandardMinROI     = 0.2
	StandardMaxPayback = 5.0

	DefaultCurrency = "DZD"
)

// ExampleFlows pre-fills new year slots when a session asks for it.
var ExampleFlows = []float64{250000, 300000, 350000, 320000, 280000, 200000, 150000}
