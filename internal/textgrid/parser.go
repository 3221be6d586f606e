package textgrid

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	headerFileType    = "ooTextFile"
	headerShortType   = "ooTextFile short"
	headerObjectClass = "TextGrid"
)

// Parse reads TextGrid text in the given variant and validates it.
func Parse(text string, strict bool, ft FileType) (*TextGrid, error) {
	return parse("", text, strict, ft)
}

// ParseUnchecked reads the structure only; callers run Validate or
// Problems themselves.
func ParseUnchecked(text string, ft FileType) (*TextGrid, error) {
	return parseStructure("", text, ft)
}

func parseStructure(path, text string, ft FileType) (*TextGrid, error) {
	if ft == FileTypeAuto {
		ft = DetectFileType(text)
	}
	syn, err := syntaxFor(ft)
	if err != nil {
		return nil, err
	}

	p := &parser{r: newLineReader(path, text), syn: syn, ft: ft}
	return p.textGrid()
}

func parse(path, text string, strict bool, ft FileType) (*TextGrid, error) {
	tg, err := parseStructure(path, text, ft)
	if err != nil {
		return nil, err
	}
	if err := Validate(tg, strict); err != nil {
		if path != "" {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, err
	}
	return tg, nil
}

type parser struct {
	r   *lineReader
	syn syntax
	ft  FileType
}

func (p *parser) textGrid() (*TextGrid, error) {
	if err := p.header(); err != nil {
		return nil, err
	}

	tmin, err := p.float("xmin")
	if err != nil {
		return nil, err
	}
	tmax, err := p.float("xmax")
	if err != nil {
		return nil, err
	}
	tg := New(DefaultName, tmin, tmax)

	exists, line, err := p.syn.field(p.r, "tiers?")
	if err != nil {
		return nil, err
	}
	switch strings.TrimSpace(exists) {
	case "<exists>":
	case "<absent>":
		return tg, p.end()
	default:
		return nil, p.r.errorf(line, "tiers?",
			"expected <exists> or <absent>, found %q", strings.TrimSpace(exists))
	}

	size, err := p.count("size")
	if err != nil {
		return nil, err
	}
	if err := p.syn.section(p.r, "item []:"); err != nil {
		return nil, err
	}

	tg.Tiers = make([]Tier, 0, p.capacity(size))
	for i := 1; i <= size; i++ {
		tier, err := p.tier(i)
		if err != nil {
			return nil, err
		}
		tg.Tiers = append(tg.Tiers, tier)
	}

	return tg, p.end()
}

// both variants open with the same two key/value lines
func (p *parser) header() error {
	fileType, err := p.headerString("File type")
	if err != nil {
		return err
	}
	switch fileType {
	case headerFileType:
	case headerShortType:
		if p.ft != FileTypeShort {
			return p.r.errorf(1, "File type",
				"short-form file declared as %s", p.ft)
		}
	default:
		return p.r.errorf(1, "File type", "unsupported file type %q", fileType)
	}

	class, err := p.headerString("Object class")
	if err != nil {
		return err
	}
	if class != headerObjectClass {
		return p.r.errorf(2, "Object class", "expected %q, found %q",
			headerObjectClass, class)
	}
	return nil
}

func (p *parser) headerString(key string) (string, error) {
	raw, line, err := longSyntax{}.field(p.r, key)
	if err != nil {
		return "", err
	}
	return p.r.quoted(raw, line, key)
}

func (p *parser) tier(index int) (Tier, error) {
	if err := p.syn.section(p.r, fmt.Sprintf("item [%d]:", index)); err != nil {
		return Tier{}, err
	}

	raw, line, err := p.syn.field(p.r, "class")
	if err != nil {
		return Tier{}, err
	}
	class, err := p.r.quoted(raw, line, "class")
	if err != nil {
		return Tier{}, err
	}
	name, err := p.string("name")
	if err != nil {
		return Tier{}, err
	}
	tmin, err := p.float("xmin")
	if err != nil {
		return Tier{}, err
	}
	tmax, err := p.float("xmax")
	if err != nil {
		return Tier{}, err
	}

	tier := Tier{Name: name, Tmin: tmin, Tmax: tmax}
	switch class {
	case IntervalTier.String():
		tier.Kind = IntervalTier
		tier.Intervals, err = p.intervals()
	case PointTier.String():
		tier.Kind = PointTier
		tier.Points, err = p.points()
	default:
		return Tier{}, p.r.errorf(line, "class", "unknown tier class %q", class)
	}
	if err != nil {
		return Tier{}, err
	}
	return tier, nil
}

func (p *parser) intervals() ([]Interval, error) {
	n, err := p.count("intervals: size")
	if err != nil {
		return nil, err
	}
	intervals := make([]Interval, 0, p.capacity(n))
	for j := 1; j <= n; j++ {
		if err := p.syn.section(p.r, fmt.Sprintf("intervals [%d]:", j)); err != nil {
			return nil, err
		}
		start, err := p.float("xmin")
		if err != nil {
			return nil, err
		}
		end, err := p.float("xmax")
		if err != nil {
			return nil, err
		}
		label, err := p.string("text")
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, Interval{Start: start, End: end, Label: label})
	}
	return intervals, nil
}

func (p *parser) points() ([]Point, error) {
	n, err := p.count("points: size")
	if err != nil {
		return nil, err
	}
	points := make([]Point, 0, p.capacity(n))
	for j := 1; j <= n; j++ {
		if err := p.syn.section(p.r, fmt.Sprintf("points [%d]:", j)); err != nil {
			return nil, err
		}
		at, err := p.float("number")
		if err != nil {
			return nil, err
		}
		label, err := p.string("mark")
		if err != nil {
			return nil, err
		}
		points = append(points, Point{Time: at, Label: label})
	}
	return points, nil
}

func (p *parser) float(key string) (float64, error) {
	raw, line, err := p.syn.field(p.r, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &ParseError{
			Path:  p.r.path,
			Line:  line,
			Field: key,
			Msg:   fmt.Sprintf("invalid number %q", strings.TrimSpace(raw)),
			Err:   err,
		}
	}
	return v, nil
}

func (p *parser) count(key string) (int, error) {
	raw, line, err := p.syn.field(p.r, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ParseError{
			Path:  p.r.path,
			Line:  line,
			Field: key,
			Msg:   fmt.Sprintf("invalid count %q", strings.TrimSpace(raw)),
			Err:   err,
		}
	}
	if n < 0 {
		return 0, p.r.errorf(line, key, "negative count %d", n)
	}
	return n, nil
}

func (p *parser) string(key string) (string, error) {
	raw, line, err := p.syn.field(p.r, key)
	if err != nil {
		return "", err
	}
	return p.r.quoted(raw, line, key)
}

// caps preallocation by what the remaining input could hold
func (p *parser) capacity(n int) int {
	return min(n, p.r.remaining())
}

func (p *parser) end() error {
	if line, num, ok := p.r.next(); ok {
		return p.r.errorf(num, "", "unexpected trailing content %q",
			strings.TrimSpace(line))
	}
	return nil
}
