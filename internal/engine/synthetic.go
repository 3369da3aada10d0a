package engine

import "fmt"

const titleQuoteLen = 50

// baseSampleScript is the fixed opening of every sample transcript.
var baseSampleScript = []TranscriptSegment{
	{
		Start:       0,
		End:         4,
		Text:        "Hello everyone, and welcome back to our channel.",
		Translation: "Hola a todos, y bienvenidos de vuelta a nuestro canal.",
		Difficulty:  Beginner,
	},
	{
		Start:       4,
		End:         8,
		Text:        "Today we're going to be talking about something really interesting.",
		Translation: "Hoy vamos a hablar sobre algo realmente interesante.",
		Difficulty:  Intermediate,
	},
	{
		Start:       8,
		End:         12,
		Text:        "Before we get started, make sure to hit that subscribe button.",
		Translation: "Antes de comenzar, asegúrense de presionar el botón de suscribirse.",
		Difficulty:  Intermediate,
	},
	{
		Start:       12,
		End:         17,
		Text:        "And if you enjoy this video, please give it a thumbs up.",
		Translation: "Y si disfrutan este video, por favor denle un me gusta.",
		Difficulty:  Beginner,
	},
}

// SampleTranscript builds the deterministic fallback transcript for videoID.
// When info is non-nil the channel and title are woven into extra segments.
// The result is never empty.
func SampleTranscript(videoID string, info *VideoInfo) []TranscriptSegment {
	out := make([]TranscriptSegment, 0, len(baseSampleScript)+3)
	out = append(out, baseSampleScript...)

	if info != nil {
		out = append(out, TranscriptSegment{
			Start:       17,
			End:         22,
			Text:        fmt.Sprintf("This content is from the channel %s.", info.ChannelTitle),
			Translation: fmt.Sprintf("Este contenido es del canal %s.", info.ChannelTitle),
			Difficulty:  Intermediate,
		})

		if info.Title != "" {
			title := TruncateRunes(info.Title, titleQuoteLen, "")
			out = append(out, TranscriptSegment{
				Start:       22,
				End:         27,
				Text:        fmt.Sprintf("The video title is: \"%s...\"", title),
				Translation: fmt.Sprintf("El título del video es: \"%s...\"", title),
				Difficulty:  Advanced,
			})
		}
	}

	out = append(out, TranscriptSegment{
		Start:       27,
		End:         32,
		Text:        fmt.Sprintf("Video ID: %s. This transcript uses secure API configuration.", videoID),
		Translation: fmt.Sprintf("ID del video: %s. Esta transcripción usa configuración de API segura.", videoID),
		Difficulty:  Advanced,
	})
	return out
}
