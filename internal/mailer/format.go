package mailer

import (
	"strings"

	"github.com/nguyentantai21042004/digest-flow/internal/summarizer"
)

// Fields are the metadata lines the summary prompt asks the model to emit
type Fields struct {
	SourceName string
	Title      string
	Episode    string
	TwoLine    string
}

// ParseFields reads the metadata lines out of a summary
func ParseFields(summary string) Fields {
	var f Fields
	for _, line := range strings.Split(summarizer.StripHeader(summary), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case f.SourceName == "" && strings.HasPrefix(line, summarizer.FieldSourceName):
			f.SourceName = fieldValue(line, summarizer.FieldSourceName)
		case f.Title == "" && strings.HasPrefix(line, summarizer.FieldTitle):
			f.Title = fieldValue(line, summarizer.FieldTitle)
		case f.Episode == "" && strings.HasPrefix(line, summarizer.FieldEpisode):
			f.Episode = fieldValue(line, summarizer.FieldEpisode)
		case f.TwoLine == "" && strings.HasPrefix(line, summarizer.FieldTwoLine):
			f.TwoLine = fieldValue(line, summarizer.FieldTwoLine)
		}
	}
	return f
}

func fieldValue(line, prefix string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, prefix))
}

func isFieldLine(line string) bool {
	for _, p := range []string{summarizer.FieldSourceName, summarizer.FieldTitle, summarizer.FieldEpisode, summarizer.FieldTwoLine} {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// Subject is "Summary: TITLE", or a generic subject naming id
func Subject(summary, id string) string {
	if title := ParseFields(summary).Title; title != "" {
		return "Summary: " + title
	}
	return "Summary - " + id
}

// FormatBody renders a summary as plain text: the metadata becomes a short
// header and markdown sections become upper-cased titles with a rule.
func FormatBody(summary, source string) string {
	f := ParseFields(summary)
	var out []string

	if f.SourceName != "" {
		out = append(out, "PODCAST: "+f.SourceName)
	}
	if f.Episode != "" {
		out = append(out, "GUEST: "+f.Episode)
	}
	if source != "" {
		out = append(out, "LINK: "+source)
	}
	if f.TwoLine != "" {
		out = append(out, "\nSUMMARY:\n"+f.TwoLine)
	}
	out = append(out, "\n"+strings.Repeat("=", 60)+"\n")

	for _, line := range strings.Split(summarizer.StripHeader(summary), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case isFieldLine(trimmed):
		case strings.HasPrefix(line, "## "):
			out = append(out, "\n"+strings.ToUpper(strings.TrimPrefix(line, "## ")))
			out = append(out, strings.Repeat("-", 40))
		case strings.HasPrefix(line, "# "):
		case trimmed != "":
			clean := strings.ReplaceAll(line, "**", "")
			clean = strings.ReplaceAll(clean, "*", "")
			clean = strings.ReplaceAll(clean, "•", "-")
			out = append(out, clean)
		}
	}

	return strings.Join(out, "\n")
}
