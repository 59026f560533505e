// ABOUTME: Caption document parser producing deduplicated transcript lines
// ABOUTME: Handles WebVTT and SRT input taken as a value, with no I/O

package transcript

import (
	"regexp"
	"strings"
)

var (
	timestampLine = regexp.MustCompile(`^\d{1,2}:\d{2}`)
	cueCounter    = regexp.MustCompile(`^\d+$`)
	markupTag     = regexp.MustCompile(`<[^>]*>`)

	entities = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&nbsp;", " ",
	)
)

// Parse returns the spoken lines of a caption document in order.
// A line is emitted only the first time it appears, because overlapping cue
// windows restate text that was already shown one or more cues earlier.
func Parse(doc string) []string {
	lines := strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")

	var out []string
	seen := make(map[string]struct{})

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if skipLine(line) {
			continue
		}
		// SRT cue counter: a bare number directly above a timing line
		if cueCounter.MatchString(line) && i+1 < len(lines) && timestampLine.MatchString(strings.TrimSpace(lines[i+1])) {
			continue
		}

		cleaned := cleanLine(line)
		if cleaned == "" {
			continue
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
	}

	return out
}

// Text joins the parsed lines into a single whitespace-normalized string
func Text(doc string) string {
	return strings.Join(strings.Fields(strings.Join(Parse(doc), " ")), " ")
}

func skipLine(line string) bool {
	switch {
	case line == "":
		return true
	case strings.HasPrefix(line, "WEBVTT"):
		return true
	case strings.HasPrefix(line, "Kind:"), strings.HasPrefix(line, "Language:"):
		return true
	case strings.HasPrefix(line, "NOTE"):
		return true
	case timestampLine.MatchString(line):
		return true
	}
	return false
}

func cleanLine(line string) string {
	line = markupTag.ReplaceAllString(line, "")
	line = entities.Replace(line)
	return strings.TrimSpace(line)
}
