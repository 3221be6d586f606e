package textgrid

// Data is the nested form: tiers stay separated, so same-named tiers
// survive a round trip.
type Data struct {
	Tmin  float64    `json:"tmin"`
	Tmax  float64    `json:"tmax"`
	Tiers []TierData `json:"tiers"`
}

type TierData struct {
	Name       string      `json:"name"`
	IsInterval bool        `json:"is_interval"`
	Entries    []EntryData `json:"entries"`
}

// point entries have Start == End
type EntryData struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Label string  `json:"label"`
}

func (tg *TextGrid) ToData() Data {
	d := Data{
		Tmin:  tg.Tmin,
		Tmax:  tg.Tmax,
		Tiers: make([]TierData, 0, len(tg.Tiers)),
	}
	for i := range tg.Tiers {
		t := &tg.Tiers[i]
		td := TierData{
			Name:       t.Name,
			IsInterval: t.IsInterval(),
			Entries:    make([]EntryData, 0, t.Len()),
		}
		if t.Kind == PointTier {
			for _, pt := range t.Points {
				td.Entries = append(td.Entries, EntryData{Start: pt.Time, End: pt.Time, Label: pt.Label})
			}
		} else {
			for _, iv := range t.Intervals {
				td.Entries = append(td.Entries, EntryData{Start: iv.Start, End: iv.End, Label: iv.Label})
			}
		}
		d.Tiers = append(d.Tiers, td)
	}
	return d
}

// FromData builds a TextGrid from nested tiers. Bounds default to the
// extent of all entries.
func FromData(tiers []TierData, opts BuildOptions) (*TextGrid, error) {
	var starts, ends []float64
	for _, td := range tiers {
		for _, e := range td.Entries {
			starts = append(starts, e.Start)
			ends = append(ends, e.End)
		}
	}
	tmin, tmax := domain(opts, starts, ends)
	tg := New(opts.Name, tmin, tmax)

	for _, td := range tiers {
		if td.IsInterval {
			tier := Tier{Name: td.Name, Kind: IntervalTier, Tmin: tmin, Tmax: tmax,
				Intervals: make([]Interval, 0, len(td.Entries))}
			for _, e := range td.Entries {
				tier.Intervals = append(tier.Intervals, Interval{Start: e.Start, End: e.End, Label: e.Label})
			}
			tg.AddTier(tier)
			continue
		}

		tier := Tier{Name: td.Name, Kind: PointTier, Tmin: tmin, Tmax: tmax,
			Points: make([]Point, 0, len(td.Entries))}
		for j, e := range td.Entries {
			if e.Start != e.End {
				return nil, vectorErrorf(ErrPointExtent,
					"tier %q entry %d spans [%g, %g]", td.Name, j, e.Start, e.End)
			}
			tier.Points = append(tier.Points, Point{Time: e.Start, Label: e.Label})
		}
		tg.AddTier(tier)
	}

	if err := Validate(tg, opts.Strict); err != nil {
		return nil, err
	}
	return tg, nil
}
