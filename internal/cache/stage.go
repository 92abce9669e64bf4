package cache

import "fmt"

// Stage is a pipeline step whose output is cached
type Stage int

const (
	Acquire Stage = iota + 1
	Transcribe
	Summarize
)

// Stages lists every cached stage in pipeline order
var Stages = []Stage{Acquire, Transcribe, Summarize}

func (s Stage) String() string {
	switch s {
	case Acquire:
		return "acquire"
	case Transcribe:
		return "transcribe"
	case Summarize:
		return "summarize"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// dir is the sibling directory holding the stage's artifacts
func (s Stage) dir() string {
	switch s {
	case Acquire:
		return "audio_files"
	case Transcribe:
		return "transcripts"
	case Summarize:
		return "summaries"
	}
	panic(fmt.Sprintf("cache: unknown stage %d", int(s)))
}

// Ext is the file extension of the stage's artifact
func (s Stage) Ext() string {
	switch s {
	case Acquire:
		return ".mp3"
	case Transcribe:
		return ".txt"
	case Summarize:
		return ".md"
	}
	panic(fmt.Sprintf("cache: unknown stage %d", int(s)))
}
