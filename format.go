package tinynotify

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// segment is a piece of a template: literal text, or a single verb with
// the number of arguments it consumes.
type segment struct {
	text string
	verb rune
	args int
}

// parseTemplate splits a fmt template into literal and verb segments.
// A '*' width or precision consumes one argument, "%%" none. Explicit
// argument indexes are rejected since they break sequential consumption.
func parseTemplate(template string) ([]segment, error) {
	var (
		segments []segment
		literal  strings.Builder
	)
	for i := 0; i < len(template); i++ {
		if template[i] != '%' {
			literal.WriteByte(template[i])
			continue
		}
		start := i
		i++
		if i >= len(template) {
			return nil, errors.New("trailing % in template")
		}
		if template[i] == '%' {
			literal.WriteByte('%')
			continue
		}

		seg := segment{}
	verb:
		for ; i < len(template); i++ {
			switch c := template[i]; {
			case c == '[':
				return nil, fmt.Errorf("explicit argument index in %q", template)
			case c == '*':
				seg.args++
			case strings.IndexByte("+-# 0.", c) >= 0, c >= '0' && c <= '9':
			default:
				r, size := utf8.DecodeRuneInString(template[i:])
				seg.verb = r
				seg.args++
				i += size - 1
				break verb
			}
		}
		if i >= len(template) {
			return nil, fmt.Errorf("incomplete verb in %q", template)
		}
		seg.text = template[start : i+1]

		if literal.Len() > 0 {
			segments = append(segments, segment{text: literal.String()})
			literal.Reset()
		}
		segments = append(segments, seg)
	}
	if literal.Len() > 0 {
		segments = append(segments, segment{text: literal.String()})
	}
	return segments, nil
}

// countVerbs returns how many arguments the fmt template consumes.
func countVerbs(template string) (int, error) {
	segments, err := parseTemplate(template)
	if err != nil {
		return 0, err
	}
	return countArgs(segments), nil
}

func countArgs(segments []segment) int {
	count := 0
	for _, seg := range segments {
		count += seg.args
	}
	return count
}

// badVerb reports whether out is fmt's error rendering of seg,
// "%!v(type=value)" or a bad '*' operand, rather than a rendered value.
func badVerb(out string, seg segment) bool {
	if strings.HasPrefix(out, "%!"+string(seg.verb)+"(") {
		return true
	}
	return seg.args > 1 &&
		(strings.HasPrefix(out, "%!(BADWIDTH)") || strings.HasPrefix(out, "%!(BADPREC)"))
}

// renderTemplate renders every verb on its own with its operands, so text
// coming from the arguments is never mistaken for a formatting failure.
func renderTemplate(template string, segments []segment, args []interface{}) (string, error) {
	var out strings.Builder
	for _, seg := range segments {
		if seg.args == 0 {
			out.WriteString(seg.text)
			continue
		}
		rendered := fmt.Sprintf(seg.text, args[:seg.args]...)
		if badVerb(rendered, seg) {
			return "", fmt.Errorf("bad verb or operand in %q: %s", template, rendered)
		}
		out.WriteString(rendered)
		args = args[seg.args:]
	}
	return out.String(), nil
}

// render expands summary and body against args. Arguments are consumed in
// order: every verb of summary first, then every verb of body. The number
// of arguments must match the verbs exactly.
func render(summary, body string, args []interface{}) (string, string, error) {
	summarySegments, err := parseTemplate(summary)
	if err != nil {
		return "", "", err
	}
	bodySegments, err := parseTemplate(body)
	if err != nil {
		return "", "", err
	}
	nSummary := countArgs(summarySegments)
	if want := nSummary + countArgs(bodySegments); want != len(args) {
		return "", "", fmt.Errorf("templates take %d arguments, got %d", want, len(args))
	}

	s, err := renderTemplate(summary, summarySegments, args[:nSummary])
	if err != nil {
		return "", "", err
	}
	b, err := renderTemplate(body, bodySegments, args[nSummary:])
	if err != nil {
		return "", "", err
	}
	return s, b, nil
}
