package transformable

// outOfBoundsDamping divides the excess of a value that is already past a
// border before it is re-applied, so a release from far outside settles
// closer to the border than a free throw would.
const outOfBoundsDamping = 2.25

// Hold adds changeBy to the property p of target and keeps the result within
// the axis borders. When keepElastic is set and the axis is elastic, a value
// pushed past a border moves by changeBy*Elastic instead of clamping. Scale
// writes ScaleX and mirrors it into ScaleY. Returns the delta actually
// applied to the property.
func Hold(p Property, cfg *AxisConfig, target *TransformState, keepElastic bool, changeBy float64) float64 {
	before := target.Get(p)
	target.Set(p, holdValue(cfg, before, keepElastic, changeBy))
	return target.Get(p) - before
}

// Settle pulls an out-of-range property back onto its nearest border and
// re-applies the excess, damped, through Hold. A value inside the borders is
// left unchanged. Used on release to find where a projected throw comes to
// rest: once with elasticity (the overshoot point) and once without (the
// settle point). Returns the delta actually applied.
func Settle(p Property, cfg *AxisConfig, target *TransformState, keepElastic bool) float64 {
	before := target.Get(p)
	target.Set(p, settleValue(cfg, before, keepElastic))
	return target.Get(p) - before
}

func holdValue(cfg *AxisConfig, value float64, keepElastic bool, changeBy float64) float64 {
	next := value + changeBy
	if !cfg.constrained() {
		return next
	}

	b := cfg.Borders
	if next >= b.Min && next <= b.Max {
		return next
	}
	if keepElastic && cfg.Elastic > 0 {
		return value + changeBy*cfg.Elastic
	}
	if next < b.Min {
		return b.Min
	}
	return b.Max
}

func settleValue(cfg *AxisConfig, value float64, keepElastic bool) float64 {
	if !cfg.constrained() {
		return value
	}

	b := cfg.Borders
	var changeBy float64
	switch {
	case value < b.Min:
		changeBy = value - b.Min
		value = b.Min
	case value > b.Max:
		changeBy = value - b.Max
		value = b.Max
	}
	return holdValue(cfg, value, keepElastic, changeBy/outOfBoundsDamping)
}

// outsideBorders reports whether v lies beyond the hard borders of cfg.
func outsideBorders(cfg *AxisConfig, v float64) bool {
	if !cfg.constrained() {
		return false
	}
	return v < cfg.Borders.Min || v > cfg.Borders.Max
}
