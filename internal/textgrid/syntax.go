package textgrid

import (
	"fmt"
	"strings"
)

// textual variant of the TextGrid format
type FileType string

const (
	FileTypeLong  FileType = "long"
	FileTypeShort FileType = "short"
	// resolved from the body when parsing; serializes as long
	FileTypeAuto FileType = "auto"
)

func ParseFileType(s string) (FileType, error) {
	switch FileType(strings.ToLower(strings.TrimSpace(s))) {
	case FileTypeLong:
		return FileTypeLong, nil
	case FileTypeShort:
		return FileTypeShort, nil
	case FileTypeAuto:
		return FileTypeAuto, nil
	default:
		return "", fmt.Errorf(
			"unsupported file type %q: use long, short, or auto",
			s,
		)
	}
}

// guesses the variant from the first line after the header
func DetectFileType(text string) FileType {
	r := newLineReader("", text)
	for {
		line, _, ok := r.next()
		if !ok {
			return FileTypeLong
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "File type") ||
			strings.HasPrefix(trimmed, "Object class") {
			continue
		}
		if hasKey(trimmed, "xmin") {
			return FileTypeLong
		}
		return FileTypeShort
	}
}

// syntax switches field layout between the long and short variants; the
// parse and format pipelines are shared.
type syntax interface {
	// raw value of the next field, right side untrimmed
	field(r *lineReader, key string) (string, int, error)
	// block header such as "item [2]:"
	section(r *lineReader, header string) error
	writeField(b *strings.Builder, depth int, key, value string)
	writeSection(b *strings.Builder, depth int, header string)
}

func syntaxFor(ft FileType) (syntax, error) {
	switch ft {
	case FileTypeLong, FileTypeAuto:
		return longSyntax{}, nil
	case FileTypeShort:
		return shortSyntax{}, nil
	default:
		return nil, fmt.Errorf("unsupported file type %q", ft)
	}
}

type longSyntax struct{}

func (longSyntax) field(r *lineReader, key string) (string, int, error) {
	line, num, ok := r.next()
	if !ok {
		return "", 0, r.errorf(0, key, "unexpected end of input")
	}
	trimmed := strings.TrimLeft(line, " \t")
	if !hasKey(trimmed, key) {
		return "", num, r.errorf(num, key,
			"expected %q line, found %q", key, strings.TrimSpace(line))
	}
	rest := strings.TrimLeft(trimmed[len(key):], " \t")
	rest = strings.TrimPrefix(rest, "=")
	return strings.TrimLeft(rest, " \t"), num, nil
}

func (longSyntax) section(r *lineReader, header string) error {
	line, num, ok := r.next()
	if !ok {
		return r.errorf(0, header, "unexpected end of input")
	}
	if strings.Join(strings.Fields(line), " ") != header {
		return r.errorf(num, header,
			"expected section header, found %q", strings.TrimSpace(line))
	}
	return nil
}

func (longSyntax) writeField(b *strings.Builder, depth int, key, value string) {
	b.WriteString(strings.Repeat("    ", depth))
	b.WriteString(key)
	if strings.HasSuffix(key, "?") {
		b.WriteString(" ")
	} else {
		b.WriteString(" = ")
	}
	b.WriteString(value)
	b.WriteString(" \n")
}

func (longSyntax) writeSection(b *strings.Builder, depth int, header string) {
	b.WriteString(strings.Repeat("    ", depth))
	b.WriteString(header)
	b.WriteString("\n")
}

type shortSyntax struct{}

func (shortSyntax) field(r *lineReader, key string) (string, int, error) {
	line, num, ok := r.next()
	if !ok {
		return "", 0, r.errorf(0, key, "unexpected end of input")
	}
	value := strings.TrimLeft(line, " \t")
	if isKeyLine(value) {
		return "", num, r.errorf(num, key,
			"found long-form line %q in short-form body", strings.TrimSpace(line))
	}
	return value, num, nil
}

func (shortSyntax) section(*lineReader, string) error { return nil }

func (shortSyntax) writeField(b *strings.Builder, _ int, _, value string) {
	b.WriteString(value)
	b.WriteString("\n")
}

func (shortSyntax) writeSection(*strings.Builder, int, string) {}

// reports whether line starts with key followed by a separator
func hasKey(line, key string) bool {
	if !strings.HasPrefix(line, key) {
		return false
	}
	rest := line[len(key):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '='
}

func isKeyLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, `"`) {
		return false
	}
	return strings.Contains(trimmed, "=") || strings.HasSuffix(trimmed, ":")
}

// lineReader walks the body line by line, tracking 1-based line numbers.
type lineReader struct {
	path  string
	lines []string
	pos   int
}

func newLineReader(path, text string) *lineReader {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return &lineReader{path: path, lines: strings.Split(text, "\n")}
}

// next non-blank line
func (r *lineReader) next() (string, int, bool) {
	for r.pos < len(r.lines) {
		line := r.lines[r.pos]
		r.pos++
		if strings.TrimSpace(line) != "" {
			return line, r.pos, true
		}
	}
	return "", 0, false
}

// next line as is, blank or not
func (r *lineReader) raw() (string, int, bool) {
	if r.pos >= len(r.lines) {
		return "", 0, false
	}
	line := r.lines[r.pos]
	r.pos++
	return line, r.pos, true
}

func (r *lineReader) remaining() int {
	return len(r.lines) - r.pos
}

// quoted string starting at value; continuation lines are consumed for
// strings with embedded newlines
func (r *lineReader) quoted(value string, line int, field string) (string, error) {
	if !strings.HasPrefix(value, `"`) {
		return "", r.errorf(line, field,
			"expected quoted string, found %q", strings.TrimSpace(value))
	}
	var sb strings.Builder
	s := value[1:]
	for {
		for i := 0; i < len(s); i++ {
			if s[i] != '"' {
				sb.WriteByte(s[i])
				continue
			}
			if i+1 < len(s) && s[i+1] == '"' {
				sb.WriteByte('"')
				i++
				continue
			}
			if rest := strings.TrimSpace(s[i+1:]); rest != "" {
				return "", r.errorf(line, field,
					"unexpected %q after closing quote", rest)
			}
			return sb.String(), nil
		}
		next, num, ok := r.raw()
		if !ok {
			return "", r.errorf(line, field, "unterminated string")
		}
		sb.WriteByte('\n')
		s = next
		line = num
	}
}

func (r *lineReader) errorf(line int, field, format string, args ...any) error {
	return &ParseError{
		Path:  r.path,
		Line:  line,
		Field: field,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// quotes s, doubling embedded quotes
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
