package srs

import (
	"strings"
	"unicode"
)

// KeywordOverlap scores how much of the reference answers' vocabulary the
// user's answer covers, as a fraction in [0, 1]. Tokens are lowercased and
// stripped of punctuation; the score is the share of distinct reference
// tokens present in the user's answer, taking the best-matching reference
// when several are given.
func KeywordOverlap(userAnswer string, references []string) float64 {
	userTokens := tokenSet(userAnswer)
	if len(userTokens) == 0 {
		return 0
	}

	best := 0.0
	for _, ref := range references {
		refTokens := tokenSet(ref)
		if len(refTokens) == 0 {
			continue
		}

		matched := 0
		for tok := range refTokens {
			if _, ok := userTokens[tok]; ok {
				matched++
			}
		}

		if score := float64(matched) / float64(len(refTokens)); score > best {
			best = score
		}
	}

	return best
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
