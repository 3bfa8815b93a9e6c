// Package anonymize replaces personal names in free text with user-chosen
// pseudonyms and back.
//
// Matching is lexical only: every pair is applied as one global,
// case-insensitive, whole-word pass, longest name first. Replacement text is
// inserted verbatim, whatever the case of the matched occurrence. Both
// functions are pure and safe for concurrent use.
package anonymize

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Pair is a single original → pseudonym substitution.
type Pair struct {
	Original  string
	Pseudonym string
}

// Anonymize replaces whole-word occurrences of each Original with its
// Pseudonym. Pairs are applied in order of descending Original length, so
// "John Smith" is consumed before "John" gets a chance to split it.
func Anonymize(text string, pairs []Pair) string {
	return substitute(text, pairs, func(p Pair) (string, string) {
		return p.Original, p.Pseudonym
	})
}

// Deanonymize is the mirror of Anonymize: whole-word occurrences of each
// Pseudonym are replaced with the Original, longest pseudonym first.
func Deanonymize(text string, pairs []Pair) string {
	return substitute(text, pairs, func(p Pair) (string, string) {
		return p.Pseudonym, p.Original
	})
}

func substitute(text string, pairs []Pair, sides func(Pair) (from, to string)) string {
	if len(pairs) == 0 || text == "" {
		return text
	}

	ordered := make([]Pair, len(pairs))
	copy(ordered, pairs)
	sort.SliceStable(ordered, func(i, j int) bool {
		fi, _ := sides(ordered[i])
		fj, _ := sides(ordered[j])
		return utf8.RuneCountInString(fi) > utf8.RuneCountInString(fj)
	})

	result := text
	for _, p := range ordered {
		from, to := sides(p)
		// later passes see the output of earlier ones
		result = replaceWholeWords(result, from, to)
	}
	return result
}

// replaceWholeWords replaces every case-insensitive occurrence of from that
// is not glued to a neighbouring word character. The boundary is only checked
// on a side where from itself starts or ends with a word character.
func replaceWholeWords(text, from, to string) string {
	if from == "" {
		return text
	}
	// QuoteMeta output only fails to compile on invalid UTF-8
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(from))
	if err != nil {
		return text
	}

	first, _ := utf8.DecodeRuneInString(from)
	last, _ := utf8.DecodeLastRuneInString(from)
	checkStart, checkEnd := isWordRune(first), isWordRune(last)

	var (
		b        strings.Builder
		copied   int
		pos      int
		replaced bool
	)
	for pos < len(text) {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]

		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if (checkStart && isWordRune(before)) || (checkEnd && isWordRune(after)) {
			// retry one rune further so an overlapping candidate is not lost
			_, size := utf8.DecodeRuneInString(text[start:])
			pos = start + size
			continue
		}

		b.WriteString(text[copied:start])
		b.WriteString(to)
		copied, pos, replaced = end, end, true
	}

	if !replaced {
		return text
	}
	b.WriteString(text[copied:])
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
