package coordination

import "strings"

// Decision is the classification outcome that picks which specialists run
type Decision int

const (
	// DecisionNone means the classification matched no token; the advisor answers directly
	DecisionNone Decision = iota
	DecisionTrend
	DecisionCreative
	// DecisionSearch means a search-only answer; no specialist runs
	DecisionSearch
	DecisionBoth
)

func (d Decision) String() string {
	switch d {
	case DecisionTrend:
		return "TREND"
	case DecisionCreative:
		return "CREATIVE"
	case DecisionSearch:
		return "SEARCH"
	case DecisionBoth:
		return "BOTH"
	default:
		return "NONE"
	}
}

// Trend reports whether the trend analyst runs
func (d Decision) Trend() bool {
	return d == DecisionTrend || d == DecisionBoth
}

// Creative reports whether the creative assistant runs
func (d Decision) Creative() bool {
	return d == DecisionCreative || d == DecisionBoth
}

// ParseDecision maps free classification text onto a Decision by token containment.
// TREND or BOTH selects the trend branch, CREATIVE or BOTH the creative branch.
func ParseDecision(text string) Decision {
	upper := strings.ToUpper(strings.TrimSpace(text))
	both := strings.Contains(upper, "BOTH")
	trend := both || strings.Contains(upper, "TREND")
	creative := both || strings.Contains(upper, "CREATIVE")

	switch {
	case trend && creative:
		return DecisionBoth
	case trend:
		return DecisionTrend
	case creative:
		return DecisionCreative
	case strings.Contains(upper, "SEARCH"):
		return DecisionSearch
	default:
		return DecisionNone
	}
}
