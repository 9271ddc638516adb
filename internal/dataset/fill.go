package dataset

// FillPolicy maps a column kind to the value substituted for nulls. It is
// passed explicitly into the Cleaner so the fill behavior is overridable
// and visible at the call site rather than baked into the algorithm.
type FillPolicy map[Kind]any

// DefaultFillPolicy returns the standard policy: numeric columns fill
// with zero, everything else with the empty string, so aggregation never
// sees a null in a numeric column and every textual cell renders.
func DefaultFillPolicy() FillPolicy {
	return FillPolicy{
		KindNumeric:  float64(0),
		KindTemporal: "",
		KindText:     "",
	}
}

// Fill returns the substitute value for a null cell of the given kind.
// Kinds missing from the policy fall back to the empty string.
func (p FillPolicy) Fill(kind Kind) any {
	if v, ok := p[kind]; ok {
		return v
	}
	return ""
}
