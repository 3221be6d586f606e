package textgrid

// name used when a TextGrid is built without one
const DefaultName = "TextGrid"

// kind of entries a tier holds
type TierKind int

const (
	IntervalTier TierKind = iota
	PointTier
)

// class name used by the file format
func (k TierKind) String() string {
	if k == PointTier {
		return "TextTier"
	}
	return "IntervalTier"
}

// labeled span [Start, End)
type Interval struct {
	Start float64
	End   float64
	Label string
}

// labeled instant
type Point struct {
	Time  float64
	Label string
}

// Tier is a named annotation channel. Only the slice matching Kind is used.
type Tier struct {
	Name      string
	Kind      TierKind
	Tmin      float64
	Tmax      float64
	Intervals []Interval
	Points    []Point
}

func (t *Tier) IsInterval() bool {
	return t.Kind == IntervalTier
}

// number of entries in the tier
func (t *Tier) Len() int {
	if t.Kind == PointTier {
		return len(t.Points)
	}
	return len(t.Intervals)
}

// represents a complete annotation over one time domain
type TextGrid struct {
	Name  string
	Tmin  float64
	Tmax  float64
	Tiers []Tier
}

// creates an empty TextGrid over [tmin, tmax]
func New(name string, tmin, tmax float64) *TextGrid {
	if name == "" {
		name = DefaultName
	}
	return &TextGrid{
		Name:  name,
		Tmin:  tmin,
		Tmax:  tmax,
		Tiers: []Tier{},
	}
}

// interval tier spanning the domain with a single empty interval
func NewIntervalTier(name string, tmin, tmax float64) Tier {
	return Tier{
		Name:      name,
		Kind:      IntervalTier,
		Tmin:      tmin,
		Tmax:      tmax,
		Intervals: []Interval{{Start: tmin, End: tmax}},
	}
}

// point tier with no points
func NewPointTier(name string, tmin, tmax float64) Tier {
	return Tier{
		Name:   name,
		Kind:   PointTier,
		Tmin:   tmin,
		Tmax:   tmax,
		Points: []Point{},
	}
}

// appends a tier, keeping tier order
func (tg *TextGrid) AddTier(tier Tier) {
	tg.Tiers = append(tg.Tiers, tier)
}

// first tier with the given name
func (tg *TextGrid) Tier(name string) (*Tier, bool) {
	for i := range tg.Tiers {
		if tg.Tiers[i].Name == name {
			return &tg.Tiers[i], true
		}
	}
	return nil, false
}

// total entry count across all tiers
func (tg *TextGrid) Len() int {
	n := 0
	for i := range tg.Tiers {
		n += tg.Tiers[i].Len()
	}
	return n
}
