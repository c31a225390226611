package option

// percentOf converts a percent field into an amount of ref. Zero means none.
func percentOf(pct, ref float64) float64 {
	if pct == 0 {
		return 0
	}
	return pct / 100 * ref
}

// equitySettlement applies the equity quoting convention: costs above 1 are a
// flat currency amount, anything else is a percent of ref.
//
// A 1.5% rate and a flat fee of 1.5 cannot be told apart under this rule.
// It is kept so existing quotes keep valuing the same way.
func equitySettlement(cost, ref float64) float64 {
	if cost > 1 {
		return cost
	}
	return percentOf(cost, ref)
}
