package textgrid

import "slices"

// Vectors is the columnar form of a TextGrid: one row per entry, tiers
// concatenated in order. Point rows carry their time in both Tmins and Tmaxs.
type Vectors struct {
	Tmins      []float64 `json:"tmins"`
	Tmaxs      []float64 `json:"tmaxs"`
	Labels     []string  `json:"labels"`
	TierNames  []string  `json:"tier_names"`
	IsInterval []bool    `json:"is_interval"`
}

// number of rows
func (v Vectors) Len() int {
	return len(v.TierNames)
}

// options shared by the columnar and nested builders
type BuildOptions struct {
	Name string
	// domain bounds; derived from the entries when nil
	Tmin   *float64
	Tmax   *float64
	Strict bool
}

func (tg *TextGrid) ToVectors() Vectors {
	n := tg.Len()
	v := Vectors{
		Tmins:      make([]float64, 0, n),
		Tmaxs:      make([]float64, 0, n),
		Labels:     make([]string, 0, n),
		TierNames:  make([]string, 0, n),
		IsInterval: make([]bool, 0, n),
	}
	for i := range tg.Tiers {
		t := &tg.Tiers[i]
		switch t.Kind {
		case PointTier:
			for _, pt := range t.Points {
				v.append(pt.Time, pt.Time, pt.Label, t.Name, false)
			}
		default:
			for _, iv := range t.Intervals {
				v.append(iv.Start, iv.End, iv.Label, t.Name, true)
			}
		}
	}
	return v
}

func (v *Vectors) append(tmin, tmax float64, label, tier string, interval bool) {
	v.Tmins = append(v.Tmins, tmin)
	v.Tmaxs = append(v.Tmaxs, tmax)
	v.Labels = append(v.Labels, label)
	v.TierNames = append(v.TierNames, tier)
	v.IsInterval = append(v.IsInterval, interval)
}

// FromVectors rebuilds a TextGrid from columns. Each contiguous run of rows
// with the same tier name becomes one tier, so two non-adjacent runs sharing
// a name yield two tiers.
func FromVectors(v Vectors, opts BuildOptions) (*TextGrid, error) {
	n := len(v.Tmins)
	if len(v.Tmaxs) != n || len(v.Labels) != n || len(v.TierNames) != n ||
		len(v.IsInterval) != n {
		return nil, vectorErrorf(ErrLengthMismatch,
			"tmins=%d tmaxs=%d labels=%d tier_names=%d is_interval=%d",
			n, len(v.Tmaxs), len(v.Labels), len(v.TierNames), len(v.IsInterval))
	}

	tmin, tmax := domain(opts, v.Tmins, v.Tmaxs)
	tg := New(opts.Name, tmin, tmax)

	for start := 0; start < n; {
		end := start + 1
		for end < n && v.TierNames[end] == v.TierNames[start] {
			end++
		}
		tier, err := runTier(v, start, end, tmin, tmax)
		if err != nil {
			return nil, err
		}
		tg.AddTier(tier)
		start = end
	}

	if err := Validate(tg, opts.Strict); err != nil {
		return nil, err
	}
	return tg, nil
}

// tier from rows [start, end) sharing one name
func runTier(v Vectors, start, end int, tmin, tmax float64) (Tier, error) {
	name := v.TierNames[start]
	interval := v.IsInterval[start]
	for i := start + 1; i < end; i++ {
		if v.IsInterval[i] != interval {
			return Tier{}, vectorErrorf(ErrMixedTierKind,
				"tier %q rows %d and %d", name, start, i)
		}
	}

	if interval {
		tier := Tier{Name: name, Kind: IntervalTier, Tmin: tmin, Tmax: tmax,
			Intervals: make([]Interval, 0, end-start)}
		for i := start; i < end; i++ {
			tier.Intervals = append(tier.Intervals, Interval{
				Start: v.Tmins[i],
				End:   v.Tmaxs[i],
				Label: v.Labels[i],
			})
		}
		return tier, nil
	}

	tier := Tier{Name: name, Kind: PointTier, Tmin: tmin, Tmax: tmax,
		Points: make([]Point, 0, end-start)}
	for i := start; i < end; i++ {
		if v.Tmins[i] != v.Tmaxs[i] {
			return Tier{}, vectorErrorf(ErrPointExtent,
				"tier %q row %d spans [%g, %g]", name, i, v.Tmins[i], v.Tmaxs[i])
		}
		tier.Points = append(tier.Points, Point{Time: v.Tmins[i], Label: v.Labels[i]})
	}
	return tier, nil
}

// requested bounds, falling back to the extent of the rows
func domain(opts BuildOptions, tmins, tmaxs []float64) (float64, float64) {
	var tmin, tmax float64
	switch {
	case opts.Tmin != nil:
		tmin = *opts.Tmin
	case len(tmins) > 0:
		tmin = slices.Min(tmins)
	}
	switch {
	case opts.Tmax != nil:
		tmax = *opts.Tmax
	case len(tmaxs) > 0:
		tmax = slices.Max(tmaxs)
	}
	return tmin, tmax
}
