package panel

// Tier is the performance class derived from average response time.
type Tier int

const (
	TierExcellent Tier = iota
	TierGood
	TierAcceptable
	TierNeedsImprovement

	tierCount = 4
)

// Response-time thresholds in minutes. Each bound is inclusive for the
// faster tier.
const (
	ExcellentMax  = 5.0
	GoodMax       = 15.0
	AcceptableMax = 30.0
)

// String returns a stable identifier, independent of display language.
func (t Tier) String() string {
	switch t {
	case TierExcellent:
		return "excellent"
	case TierGood:
		return "good"
	case TierAcceptable:
		return "acceptable"
	default:
		return "needs_improvement"
	}
}

// Color returns the token for the tier. The bar uses the same table.
func (t Tier) Color() Token {
	switch t {
	case TierExcellent:
		return TokenGreen
	case TierGood:
		return TokenYellow
	case TierAcceptable:
		return TokenOrange
	default:
		return TokenRed
	}
}

// Classify maps an average response time to its tier. NaN lands in
// TierNeedsImprovement since every comparison fails.
func Classify(minutes float64) Tier {
	switch {
	case minutes <= ExcellentMax:
		return TierExcellent
	case minutes <= GoodMax:
		return TierGood
	case minutes <= AcceptableMax:
		return TierAcceptable
	default:
		return TierNeedsImprovement
	}
}

// FillFraction returns the performance bar fill in percent. The upper
// bound is always 100; the lower bound is 0 only under ClampSymmetric.
func FillFraction(minutes float64, mode ClampMode) float64 {
	fill := (AcceptableMax - minutes) / AcceptableMax * 100
	if fill > 100 {
		fill = 100
	}
	if mode == ClampSymmetric && fill < 0 {
		fill = 0
	}
	return fill
}
