package content

import (
	"fmt"
	"strings"
)

// Kind is the closed set of content classifications
type Kind int

const (
	Video Kind = iota + 1
	Podcast
	Audio
	Article
	Transcript
)

// Kinds lists every Kind in declaration order
var Kinds = []Kind{Video, Podcast, Audio, Article, Transcript}

func (k Kind) String() string {
	switch k {
	case Video:
		return "video"
	case Podcast:
		return "podcast"
	case Audio:
		return "audio"
	case Article:
		return "article"
	case Transcript:
		return "transcript"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Tag is the short platform tag used in identifiers for local inputs
func (k Kind) Tag() string {
	switch k {
	case Video:
		return "vid"
	case Podcast:
		return "pod"
	case Audio:
		return "aud"
	case Article:
		return "art"
	case Transcript:
		return "txt"
	}
	return "src"
}

// IsText reports whether the kind is acquired as text rather than audio
func (k Kind) IsText() bool {
	switch k {
	case Article, Transcript:
		return true
	case Video, Podcast, Audio:
		return false
	}
	return false
}

// ParseKind parses an explicit mode flag value
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "video", "vid", "youtube":
		return Video, nil
	case "podcast", "pod":
		return Podcast, nil
	case "audio", "aud", "mp3":
		return Audio, nil
	case "article", "art", "web":
		return Article, nil
	case "transcript", "text", "txt":
		return Transcript, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want one of video, podcast, audio, article, transcript)", s)
}
