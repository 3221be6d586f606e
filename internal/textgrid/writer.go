package textgrid

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format renders the TextGrid in the given variant. Field order matches
// what Parse expects.
func (tg *TextGrid) Format(ft FileType) string {
	syn, err := syntaxFor(ft)
	if err != nil {
		syn = longSyntax{}
	}

	var b strings.Builder
	b.WriteString("File type = \"" + headerFileType + "\"\n")
	b.WriteString("Object class = \"" + headerObjectClass + "\"\n\n")

	syn.writeField(&b, 0, "xmin", formatFloat(tg.Tmin))
	syn.writeField(&b, 0, "xmax", formatFloat(tg.Tmax))
	if len(tg.Tiers) == 0 {
		syn.writeField(&b, 0, "tiers?", "<absent>")
		return b.String()
	}
	syn.writeField(&b, 0, "tiers?", "<exists>")
	syn.writeField(&b, 0, "size", strconv.Itoa(len(tg.Tiers)))
	syn.writeSection(&b, 0, "item []:")

	for i := range tg.Tiers {
		t := &tg.Tiers[i]
		syn.writeSection(&b, 1, fmt.Sprintf("item [%d]:", i+1))
		syn.writeField(&b, 2, "class", quote(t.Kind.String()))
		syn.writeField(&b, 2, "name", quote(t.Name))
		syn.writeField(&b, 2, "xmin", formatFloat(t.Tmin))
		syn.writeField(&b, 2, "xmax", formatFloat(t.Tmax))

		if t.Kind == PointTier {
			syn.writeField(&b, 2, "points: size", strconv.Itoa(len(t.Points)))
			for j, pt := range t.Points {
				syn.writeSection(&b, 2, fmt.Sprintf("points [%d]:", j+1))
				syn.writeField(&b, 3, "number", formatFloat(pt.Time))
				syn.writeField(&b, 3, "mark", quote(pt.Label))
			}
			continue
		}

		syn.writeField(&b, 2, "intervals: size", strconv.Itoa(len(t.Intervals)))
		for j, iv := range t.Intervals {
			syn.writeSection(&b, 2, fmt.Sprintf("intervals [%d]:", j+1))
			syn.writeField(&b, 3, "xmin", formatFloat(iv.Start))
			syn.writeField(&b, 3, "xmax", formatFloat(iv.End))
			syn.writeField(&b, 3, "text", quote(iv.Label))
		}
	}

	return b.String()
}

// writes the formatted TextGrid to w
func (tg *TextGrid) Write(w io.Writer, ft FileType) error {
	_, err := io.WriteString(w, tg.Format(ft))
	return err
}

// shortest decimal that parses back to the same float64
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
