package summarizer

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/digest-flow/internal/config"
	"github.com/nguyentantai21042004/digest-flow/internal/content"
)

// Metadata lines the model is asked to emit before the sections. The mailer
// reads them back to build the email subject and header.
const (
	FieldSourceName = "PODCAST_NAME:"
	FieldTitle      = "TITLE:"
	FieldEpisode    = "EPISODE_INFO:"
	FieldTwoLine    = "TWO_LINE_SUMMARY:"
)

func sourceNoun(kind content.Kind) string {
	switch kind {
	case content.Podcast, content.Audio:
		return "podcast episode"
	case content.Video:
		return "video"
	case content.Article:
		return "article"
	case content.Transcript:
		return "transcript"
	}
	return "content"
}

// buildPrompt renders the summarisation request for the reader described by profile
func buildPrompt(profile config.ProfileConfig, kind content.Kind, language, instruction, transcript string) string {
	noun := sourceNoun(kind)
	f := profile.Formatting

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this %s and create a comprehensive summary with specific, actionable insights.\n\n", noun)

	if profile.Role != "" {
		fmt.Fprintf(&b, "The reader is a %s.\n", profile.Role)
	}
	if len(profile.Interests) > 0 {
		fmt.Fprintf(&b, "Their interests: %s.\n", strings.Join(profile.Interests, ", "))
	}
	if len(profile.Goals) > 0 {
		fmt.Fprintf(&b, "Their goals: %s.\n", strings.Join(profile.Goals, "; "))
	}
	if f.Tone != "" {
		fmt.Fprintf(&b, "Write in a %s tone.\n", f.Tone)
	}
	if language != "" {
		fmt.Fprintf(&b, "The transcript language is %q; write the summary in that language.\n", language)
	}

	b.WriteString("\nFirst, provide:\n")
	fmt.Fprintf(&b, "%s [Name of the show, channel or publication]\n", FieldSourceName)
	fmt.Fprintf(&b, "%s [The main topic or most compelling insight as a title]\n", FieldTitle)
	fmt.Fprintf(&b, "%s [Guest or author name(s) and their role/company]\n", FieldEpisode)
	fmt.Fprintf(&b, "%s [2 sentence overview of the core value of this %s]\n", FieldTwoLine, noun)

	b.WriteString("\nThen create these sections:\n\n")
	fmt.Fprintf(&b, "## Key Points (%d specific points with details)\n", f.KeyPoints)
	fmt.Fprintf(&b, "## Notable Quotes (%d memorable quotes with speaker attribution)\n", f.Quotes)
	b.WriteString("## Insights For You (2 points most relevant to the reader's goals)\n")
	b.WriteString("## People, Companies & References\n")
	b.WriteString("## Main Takeaways (3-4 detailed lessons)\n")
	fmt.Fprintf(&b, "## Summary (one paragraph, 7-10 sentences, capturing the arc of the %s)\n", noun)
	if f.IncludeRating {
		b.WriteString("## Insight Rating (Usefulness, Novelty, Depth on a 1-10 scale, with a short assessment)\n")
	}
	b.WriteString("## Topics (relevant hashtags)\n")

	if instruction = strings.TrimSpace(instruction); instruction != "" {
		fmt.Fprintf(&b, "\nAdditional instruction: %s\n", instruction)
	}

	fmt.Fprintf(&b, "\nTranscript:\n%s", transcript)
	return b.String()
}
