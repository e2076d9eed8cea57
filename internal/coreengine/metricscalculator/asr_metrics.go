package metricscalculator

import (
	"fmt"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Edit-distance options shared by WER and CER: unit costs, exact item equality.
var editOptions = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 1,
	Matches: func(sourceItem, targetItem rune) bool {
		return sourceItem == targetItem
	},
}

// The library computes distance over rune sequences, so each distinct item
// (word or rune) is interned as a synthetic rune before comparison.
func editDistance(reference, hypothesis []interface{}) int {
	interned := make(map[interface{}]rune, len(reference)+len(hypothesis))
	intern := func(items []interface{}) []rune {
		runes := make([]rune, len(items))
		for i, item := range items {
			r, ok := interned[item]
			if !ok {
				r = rune(len(interned))
				interned[item] = r
			}
			runes[i] = r
		}
		return runes
	}
	return levenshtein.DistanceForStrings(intern(reference), intern(hypothesis), editOptions)
}

func wordsOf(s string) []interface{} {
	fields := strings.Fields(strings.ToLower(s))
	items := make([]interface{}, len(fields))
	for i, f := range fields {
		items[i] = f
	}
	return items
}

func runesOf(s string) []interface{} {
	runes := []rune(strings.ToLower(s))
	items := make([]interface{}, len(runes))
	for i, r := range runes {
		items[i] = r
	}
	return items
}

// CalculateWER computes the Word Error Rate of a transcript against the
// expected text: (substitutions + insertions + deletions) / words in expected.
// Comparison is case-insensitive. These rates are informational only; they
// never decide whether an attempt matched.
func CalculateWER(expected string, transcript string) (float64, error) {
	ref := wordsOf(expected)
	hyp := wordsOf(transcript)

	if len(ref) == 0 {
		if len(hyp) == 0 {
			return 0.0, nil
		}
		return 1.0, fmt.Errorf("expected text has no words, cannot normalize WER (%d transcript words treated as 100%% error)", len(hyp))
	}

	return float64(editDistance(ref, hyp)) / float64(len(ref)), nil
}

// CalculateCER computes the Character Error Rate of a transcript against the
// expected text, over runes, case-insensitively.
func CalculateCER(expected string, transcript string) (float64, error) {
	ref := runesOf(expected)
	hyp := runesOf(transcript)

	if len(ref) == 0 {
		if len(hyp) == 0 {
			return 0.0, nil
		}
		return 1.0, fmt.Errorf("expected text has no characters, cannot normalize CER (%d transcript characters treated as 100%% error)", len(hyp))
	}

	return float64(editDistance(ref, hyp)) / float64(len(ref)), nil
}
