package text

import (
	"strings"
	"unicode"

	"github.com/byxorna/fable/pkg/types/v1"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FilterStories returns the stories whose title fuzzy matches term, best
// match first. An empty term keeps every story in load order.
func FilterStories(term string, stories []*v1.Story) []*v1.Story {
	term = strings.TrimSpace(term)
	if term == "" {
		out := make([]*v1.Story, len(stories))
		copy(out, stories)
		return out
	}

	titles := make([]string, len(stories))
	for i, s := range stories {
		titles[i] = normalizeOrKeep(s.Title)
	}

	needle := normalizeOrKeep(term)
	matches := fuzzy.Find(needle, titles)
	out := make([]*v1.Story, 0, len(matches))
	for _, m := range matches {
		out = append(out, stories[m.Index])
	}
	return out
}

func StyleFilteredText(haystack, needles string, defaultStyle termenv.Style) string {
	b := strings.Builder{}

	normalizedHay := normalizeOrKeep(haystack)

	matches := fuzzy.Find(normalizeOrKeep(needles), []string{normalizedHay})
	if len(matches) == 0 {
		return defaultStyle.Styled(haystack)
	}

	matched := map[int]struct{}{}
	for _, mi := range matches[0].MatchedIndexes {
		matched[mi] = struct{}{}
	}

	// MatchedIndexes are byte offsets into the normalized string
	offset := 0
	for _, r := range normalizedHay {
		s := string(r)
		if _, ok := matched[offset]; ok {
			b.WriteString(defaultStyle.Underline().Styled(s))
		} else {
			b.WriteString(defaultStyle.Styled(s))
		}
		offset += len(s)
	}

	return b.String()
}

// Normalize text to aid in the filtering process. In particular, we remove
// diacritics, "ö" becomes "o". Note that Mn is the unicode key for nonspacing
// marks.
func Normalize(in string) (string, error) {
	transformer := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(transformer, in)
	return out, err
}

func normalizeOrKeep(in string) string {
	out, err := Normalize(in)
	if err != nil {
		return in
	}
	return out
}

func TruncateWithTail(txt string, width uint, ellipsis string) string {
	return truncate.StringWithTail(txt, width, ellipsis)
}
