package acquirer

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reVTTHeader   = regexp.MustCompile(`^WEBVTT\b`)
	reVTTMeta     = regexp.MustCompile(`^(Kind|Language|NOTE|STYLE|REGION)\b`)
	reVTTTiming   = regexp.MustCompile(`^(\d{2}:)?\d{2}:\d{2}\.\d{3}\s*-->\s*((?:\d{2}:)?\d{2}:\d{2}\.\d{3})`)
	reVTTTag      = regexp.MustCompile(`<[^>]+>`)
	reVTTCueIndex = regexp.MustCompile(`^\d+$`)
)

// paragraphGapMs starts a new paragraph when captions pause this long
const paragraphGapMs = 2000

// cleanVTT turns a WebVTT caption track into plain text. Timing, markup and
// the rolling repeats of auto-generated captions are dropped, and cues
// separated by a pause become paragraphs.
func cleanVTT(raw string) string {
	var (
		paragraphs []string
		current    []string
		prev       string
		prevEnd    = -1
	)

	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))

		if m := reVTTTiming.FindStringSubmatch(line); m != nil {
			start := vttMillis(strings.TrimSpace(strings.SplitN(line, "-->", 2)[0]))
			if prevEnd >= 0 && start-prevEnd > paragraphGapMs {
				flush()
			}
			prevEnd = vttMillis(m[2])
			continue
		}
		if line == "" || reVTTHeader.MatchString(line) || reVTTMeta.MatchString(line) || reVTTCueIndex.MatchString(line) {
			continue
		}

		line = strings.TrimSpace(reVTTTag.ReplaceAllString(line, ""))
		if line == "" || line == prev {
			continue
		}
		prev = line
		current = append(current, line)
	}
	flush()

	return strings.Join(paragraphs, "\n\n")
}

// vttMillis parses HH:MM:SS.mmm or MM:SS.mmm
func vttMillis(ts string) int {
	parts := strings.Split(ts, ":")
	total := 0
	for i, p := range parts {
		if i == len(parts)-1 {
			secs, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return 0
			}
			return total*60*1000 + int(secs*1000+0.5)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0
		}
		total = total*60 + n
	}
	return 0
}
