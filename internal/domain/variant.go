package domain

// Variant parameterizes the position builder. The two shipped variants
// differ in entry selection and in the sign applied to straddle PnL.
type Variant struct {
	Name             string  // directory name for persisted artifacts
	PnLSign          float64 // applied once, at the straddle pivot
	TargetWindowDays int     // target calendar days between entry observation and earnings (0 = enter on the entry date itself)
	MinLeadDays      int     // entry observation must lead the entry date by more than this many calendar days
}

// Long buys the straddle about two weeks before earnings and unwinds it
// on the entry date, just ahead of the announcement.
var Long = Variant{
	Name:             "long",
	PnLSign:          1,
	TargetWindowDays: 14,
	MinLeadDays:      8,
}

// Short sells the straddle on the entry date and covers on the first
// trading date after the announcement.
var Short = Variant{
	Name:    "short",
	PnLSign: -1,
}

// IsShort reports whether the variant enters on the entry date itself.
func (v Variant) IsShort() bool {
	return v.TargetWindowDays == 0
}

// Include selects which variant results an aggregation run consumes.
type Include string

// Include selector values for the aggregate CLI.
const (
	IncludeLong  Include = "long"
	IncludeShort Include = "short"
	IncludeBoth  Include = "both"
)

// Variants returns the variants covered by the selector.
func (in Include) Variants() []Variant {
	switch in {
	case IncludeLong:
		return []Variant{Long}
	case IncludeShort:
		return []Variant{Short}
	default:
		return []Variant{Long, Short}
	}
}

// Valid reports whether the selector is one of long, short, both.
func (in Include) Valid() bool {
	return in == IncludeLong || in == IncludeShort || in == IncludeBoth
}

// Position sign tags attached to merged trades and daily records.
const (
	PosSignLong  = "Long"
	PosSignShort = "Short"
)

// PosSign returns the merge tag for the variant.
func (v Variant) PosSign() string {
	if v.PnLSign < 0 {
		return PosSignShort
	}
	return PosSignLong
}
