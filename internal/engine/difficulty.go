package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
)

// academicWords are connectors that mark a sentence as advanced on their own.
var academicWords = []string{
	"however",
	"therefore",
	"furthermore",
	"consequently",
	"nevertheless",
	"specifically",
	"particularly",
	"essentially",
	"significantly",
	"approximately",
}

const (
	complexWordLen = 8 // words longer than this count as complex
)

// ClassifyDifficulty scores text by average word length, share of long words,
// and presence of academic connectors. Empty text is beginner.
func ClassifyDifficulty(text string) Difficulty {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return Beginner
	}

	total, complex := 0, 0
	for _, w := range words {
		n := utf8.RuneCountInString(w)
		total += n
		if n > complexWordLen {
			complex++
		}
	}
	avgLen := float64(total) / float64(len(words))
	complexityRatio := float64(complex) / float64(len(words))

	hasAcademic := lo.SomeBy(words, func(w string) bool {
		return lo.Contains(academicWords, strings.TrimFunc(w, unicode.IsPunct))
	})

	switch {
	case complexityRatio > 0.25 || avgLen > 6 || hasAcademic:
		return Advanced
	case complexityRatio > 0.1 || avgLen > 4.5:
		return Intermediate
	default:
		return Beginner
	}
}
