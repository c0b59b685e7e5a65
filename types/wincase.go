package types

import "fmt"

// Kind discriminates the closed set of market families a wincase can
// belong to. Adding an outcome type means adding a Kind and extending the
// switches in MarketOf/InverseOf/CompareWincase — never a new concrete
// type implementing some Wincase interface.
type Kind int32

const (
	KindUnknown Kind = iota
	KindResultHome
	KindResultDraw
	KindResultAway
	KindRoundHome
	KindRoundDraw
	KindRoundAway
	KindHandicap
	KindTotal
	KindTotalGoalsHome
	KindTotalGoalsAway
	KindCorrectScore
)

func (k Kind) String() string {
	switch k {
	case KindResultHome:
		return "result_home"
	case KindResultDraw:
		return "result_draw"
	case KindResultAway:
		return "result_away"
	case KindRoundHome:
		return "round_home"
	case KindRoundDraw:
		return "round_draw"
	case KindRoundAway:
		return "round_away"
	case KindHandicap:
		return "handicap"
	case KindTotal:
		return "total"
	case KindTotalGoalsHome:
		return "total_goals_home"
	case KindTotalGoalsAway:
		return "total_goals_away"
	case KindCorrectScore:
		return "correct_score"
	default:
		return "unknown"
	}
}

// Wincase is a single outcome within a market: a tagged union keyed by
// Kind, with payload fields that only apply to some kinds (Threshold for
// Handicap/Total, Home/Away for CorrectScore). Yes/No are the two
// inverse sides of the same market.
type Wincase struct {
	Kind      Kind
	Yes       bool
	Threshold Rational // used by KindHandicap, KindTotal
	Home      int32    // used by KindCorrectScore
	Away      int32    // used by KindCorrectScore
}

// Market is the equivalence class a wincase belongs to: the same payload
// with the Yes/No side stripped off.
type Market struct {
	Kind      Kind
	Threshold Rational
	Home      int32
	Away      int32
}

// MarketOf is a pure, total function from wincase to market. Threshold is
// normalized to lowest terms so two markets that are the same fraction
// compare equal with plain struct equality, not just CompareMarket.
func MarketOf(w Wincase) Market {
	return Market{Kind: w.Kind, Threshold: w.Threshold.Normalize(), Home: w.Home, Away: w.Away}
}

// InverseOf returns the opposing wincase on the same market.
func InverseOf(w Wincase) Wincase {
	w.Yes = !w.Yes
	return w
}

// AreInverse reports whether a and b are opposite sides of the same market.
func AreInverse(a, b Wincase) bool {
	return MarketOf(a) == MarketOf(b) && a.Yes != b.Yes
}

// CompareMarket gives the total order over markets.
func CompareMarket(a, b Market) int {
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	switch a.Kind {
	case KindHandicap, KindTotal:
		return a.Threshold.Compare(b.Threshold)
	case KindCorrectScore:
		if a.Home != b.Home {
			if a.Home < b.Home {
				return -1
			}
			return 1
		}
		if a.Away != b.Away {
			if a.Away < b.Away {
				return -1
			}
			return 1
		}
		return 0
	default:
		return 0
	}
}

// MarketLess is the strict weak order over markets: !(a<b) && !(b<a) is
// equality under it.
func MarketLess(a, b Market) bool {
	return CompareMarket(a, b) < 0
}

// CompareWincase orders wincases: first by market, then No before Yes.
func CompareWincase(a, b Wincase) int {
	if c := CompareMarket(MarketOf(a), MarketOf(b)); c != 0 {
		return c
	}
	if a.Yes == b.Yes {
		return 0
	}
	if !a.Yes && b.Yes {
		return -1
	}
	return 1
}

// WincaseLess is the strict weak order wincase equality is checked
// through: !(a<b) && !(b<a), never a struct ==.
func WincaseLess(a, b Wincase) bool {
	return CompareWincase(a, b) < 0
}

// WincaseEqual implements the "neither is less than the other" equality
// test used for restore-duplicate detection.
func WincaseEqual(a, b Wincase) bool {
	return !WincaseLess(a, b) && !WincaseLess(b, a)
}

func (w Wincase) String() string {
	side := "no"
	if w.Yes {
		side = "yes"
	}
	switch w.Kind {
	case KindHandicap, KindTotal:
		return fmt.Sprintf("%s(%s)-%s", w.Kind, w.Threshold, side)
	case KindCorrectScore:
		return fmt.Sprintf("%s(%d:%d)-%s", w.Kind, w.Home, w.Away, side)
	default:
		return fmt.Sprintf("%s-%s", w.Kind, side)
	}
}

func (m Market) String() string {
	switch m.Kind {
	case KindHandicap, KindTotal:
		return fmt.Sprintf("%s(%s)", m.Kind, m.Threshold)
	case KindCorrectScore:
		return fmt.Sprintf("%s(%d:%d)", m.Kind, m.Home, m.Away)
	default:
		return m.Kind.String()
	}
}
