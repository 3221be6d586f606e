package textgrid

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatShortMatchesPraatLayout(t *testing.T) {
	got := fixtureTextGrid().Format(FileTypeShort)
	if got != shortFixture {
		t.Errorf("Format(short) mismatch:\n%s", cmp.Diff(shortFixture, got))
	}
}

func TestFormatLongLayout(t *testing.T) {
	got := fixtureTextGrid().Format(FileTypeLong)

	for _, want := range []string{
		"File type = \"ooTextFile\"\nObject class = \"TextGrid\"\n\n",
		"xmin = 0 \nxmax = 2.5 \ntiers? <exists> \nsize = 2 \nitem []:\n",
		"    item [1]:\n        class = \"IntervalTier\" \n        name = \"words\" \n",
		"        intervals: size = 3 \n        intervals [1]:\n            xmin = 0 \n",
		"            text = \"say \"\"hi\"\"\" \n",
		"    item [2]:\n        class = \"TextTier\" \n",
		"        points [2]:\n            number = 1.5 \n            mark = \"L%\" \n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Format(long) missing %q", want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tmax := 2.0 / 3
	tiny := math.Nextafter(0.1+0.2, 1)
	tg := &TextGrid{
		Name: DefaultName,
		Tmin: 0,
		Tmax: tmax,
		Tiers: []Tier{
			{
				Name: "phones",
				Kind: IntervalTier,
				Tmin: 0,
				Tmax: tmax,
				Intervals: []Interval{
					{Start: 0, End: 0.1 + 0.2, Label: "a"},
					{Start: 0.1 + 0.2, End: tiny, Label: ""},
					{Start: tiny, End: 1.0 / 3, Label: "line\nbreak"},
					{Start: 1.0 / 3, End: tmax, Label: "b"},
				},
			},
			{
				Name:   "events",
				Kind:   PointTier,
				Tmin:   0,
				Tmax:   tmax,
				Points: []Point{{Time: 1e-9, Label: `"`}, {Time: 0.25, Label: ""}},
			},
			{
				Name:   "empty",
				Kind:   PointTier,
				Tmin:   0,
				Tmax:   tmax,
				Points: []Point{},
			},
		},
	}

	for _, ft := range []FileType{FileTypeLong, FileTypeShort} {
		t.Run(string(ft), func(t *testing.T) {
			got, err := Parse(tg.Format(ft), true, ft)
			if err != nil {
				t.Fatalf("Parse(Format(%s)) returned error: %v", ft, err)
			}
			if diff := cmp.Diff(tg, got, equateEmpty); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEmptyLabelPreserved(t *testing.T) {
	tg := New("", 0, 1)
	tg.AddTier(NewIntervalTier("words", 0, 1))

	for _, ft := range []FileType{FileTypeLong, FileTypeShort} {
		text := tg.Format(ft)
		if !strings.Contains(text, `""`) {
			t.Errorf("Format(%s) dropped the empty label:\n%s", ft, text)
		}
		got, err := Parse(text, true, ft)
		if err != nil {
			t.Fatalf("Parse returned error: %v", err)
		}
		if n := len(got.Tiers[0].Intervals); n != 1 {
			t.Fatalf("expected 1 interval, got %d", n)
		}
		if label := got.Tiers[0].Intervals[0].Label; label != "" {
			t.Errorf("expected empty label, got %q", label)
		}
	}
}

func TestFormatNoTiers(t *testing.T) {
	tg := New("", 0, 4)
	for _, ft := range []FileType{FileTypeLong, FileTypeShort} {
		got, err := Parse(tg.Format(ft), true, ft)
		if err != nil {
			t.Fatalf("Parse(Format(%s)) returned error: %v", ft, err)
		}
		if diff := cmp.Diff(tg, got, equateEmpty); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := fixtureTextGrid().Write(&buf, FileTypeShort); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if buf.String() != shortFixture {
		t.Errorf("Write output differs from Format")
	}
}
