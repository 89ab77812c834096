package output

import (
	"fmt"
	"reflect"
	"strings"
)

// PreviewHeadTail is how many entries are kept at the start and at the end of a shortened preview.
const PreviewHeadTail = 5

func Indent(spaces int, multilineText string) string {
	indent := strings.Repeat(" ", spaces)
	lines := strings.Split(multilineText, "\n")
	var indented strings.Builder
	for i, line := range lines {
		indented.WriteString(indent)
		indented.WriteString(line)
		if len(lines) > 1 && i < len(lines)-1 {
			indented.WriteRune('\n') //unless last line or only line
		}
	}
	return indented.String()
}

// Preview joins the lines, lists longer than 2*PreviewHeadTail are cut to head and tail separated by "...".
func Preview(lines []string) string {
	if len(lines) > 2*PreviewHeadTail {
		head := strings.Join(lines[:PreviewHeadTail], "\n")
		tail := strings.Join(lines[len(lines)-PreviewHeadTail:], "\n")
		return head + "\n...\n" + tail
	}
	return strings.Join(lines, "\n")
}

func Plural(countable interface{}, singular string, plural string) string {
	switch c := countable.(type) {
	case int:
		if c != 1 {
			return plural
		}
	default:
		if reflect.ValueOf(c).Len() != 1 {
			return plural
		}
	}
	return singular
}

func Filesize(i int64) string {
	switch {
	case i >= 1024*1024:
		return fmt.Sprintf("%.1f MiB", float64(i)/float64(1024*1024))
	case i > 1024:
		return fmt.Sprintf("%.0f KiB", float64(i)/float64(1024))
	default:
		return fmt.Sprintf("%d bytes", i)
	}
}
