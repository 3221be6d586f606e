package textgrid

import (
	"fmt"
	"math"
)

// Validate checks temporal invariants and returns the first violation.
// Ordering and overlap rules always apply; strict adds full coverage of
// each interval tier's bounds.
func Validate(tg *TextGrid, strict bool) error {
	v := validator{strict: strict, limit: 1}
	v.textGrid(tg)
	if len(v.problems) > 0 {
		return v.problems[0]
	}
	return nil
}

// Problems returns every violation instead of stopping at the first.
func Problems(tg *TextGrid, strict bool) []*ValidationError {
	v := validator{strict: strict}
	v.textGrid(tg)
	return v.problems
}

type validator struct {
	strict   bool
	limit    int
	problems []*ValidationError
}

func (v *validator) done() bool {
	return v.limit > 0 && len(v.problems) >= v.limit
}

func (v *validator) report(tier int, name string, entry int, rule Rule, detail string) {
	if v.done() {
		return
	}
	v.problems = append(v.problems, &ValidationError{
		Tier:     tier,
		TierName: name,
		Entry:    entry,
		Rule:     rule,
		Detail:   detail,
	})
}

func (v *validator) textGrid(tg *TextGrid) {
	if !(tg.Tmin <= tg.Tmax) {
		v.report(-1, "", -1, RuleDomain, bounds(tg.Tmin, tg.Tmax))
	}
	for i := range tg.Tiers {
		if v.done() {
			return
		}
		v.tier(i, &tg.Tiers[i])
	}
}

func (v *validator) tier(index int, t *Tier) {
	if !(t.Tmin <= t.Tmax) {
		v.report(index, t.Name, -1, RuleTierDomain, bounds(t.Tmin, t.Tmax))
	}
	if t.Kind == PointTier {
		v.points(index, t)
		return
	}
	v.intervals(index, t)
}

func (v *validator) points(index int, t *Tier) {
	for j, pt := range t.Points {
		if math.IsNaN(pt.Time) {
			v.report(index, t.Name, j, RulePointOrder, "NaN time")
		}
	}
	for j := 1; j < len(t.Points); j++ {
		prev, cur := t.Points[j-1].Time, t.Points[j].Time
		if !(prev < cur) {
			v.report(index, t.Name, j, RulePointOrder,
				fmt.Sprintf("%g after %g", cur, prev))
		}
	}
}

func (v *validator) intervals(index int, t *Tier) {
	for j, iv := range t.Intervals {
		if !(iv.Start <= iv.End) {
			v.report(index, t.Name, j, RuleEntryBounds, bounds(iv.Start, iv.End))
		}
		if j == 0 {
			continue
		}
		prev := t.Intervals[j-1]
		switch {
		case !(iv.Start >= prev.End):
			v.report(index, t.Name, j, RuleOverlap,
				fmt.Sprintf("starts at %g before previous end %g", iv.Start, prev.End))
		case v.strict && iv.Start != prev.End:
			v.report(index, t.Name, j, RuleGap,
				fmt.Sprintf("gap from %g to %g", prev.End, iv.Start))
		}
	}

	if !v.strict || len(t.Intervals) == 0 {
		return
	}
	if first := t.Intervals[0]; first.Start != t.Tmin {
		v.report(index, t.Name, 0, RuleStartAlign,
			fmt.Sprintf("starts at %g, tier starts at %g", first.Start, t.Tmin))
	}
	last := len(t.Intervals) - 1
	if end := t.Intervals[last].End; end != t.Tmax {
		v.report(index, t.Name, last, RuleEndAlign,
			fmt.Sprintf("ends at %g, tier ends at %g", end, t.Tmax))
	}
}

func bounds(lo, hi float64) string {
	return fmt.Sprintf("[%g, %g]", lo, hi)
}
