package markup

import (
	"fmt"
	"regexp"

	"codeberg.org/snonux/charla/internal"
)

// foreignWordRegexp matches one foreign-word tag. The word and translation
// captures exclude ']' so a missing closing bracket never matches.
var foreignWordRegexp = regexp.MustCompile(`<foreign>\[([^\]]+)\]==\[([^\]]+)\]</foreign>`)

// SegmentKind distinguishes plain text runs from marked foreign words.
type SegmentKind string

const (
	KindPlain   SegmentKind = "plain"
	KindForeign SegmentKind = "foreign"
)

// TextSegment is one contiguous run of parsed text.
type TextSegment struct {
	ID          string
	Text        string
	Kind        SegmentKind
	Translation string // non-empty iff Kind == KindForeign
}

// ParsedText is the result of parsing one message.
type ParsedText struct {
	Segments        []TextSegment
	HasForeignWords bool
}

// Pair is one word/translation occurrence, in order of appearance.
type Pair struct {
	Word        string
	Translation string
}

// Parse splits text into plain and foreign segments. It is pure and
// deterministic: the same input always yields the same segments, and the
// concatenated segment texts equal StripMarkup(text), except that two
// directly adjacent tags get a single-space plain segment between them
// so rendered foreign words never run together.
func Parse(text, id string) ParsedText {
	prefix := id
	if prefix == "" {
		prefix = internal.GenerateMessageID(text)
	}

	matches := foreignWordRegexp.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		// Whole input as a single plain segment, even when empty.
		return ParsedText{
			Segments: []TextSegment{{
				ID:   fmt.Sprintf("%s_plain_0", prefix),
				Text: text,
				Kind: KindPlain,
			}},
		}
	}

	var segments []TextSegment
	segmentID := 0
	plain := func(s string) {
		segments = append(segments, TextSegment{
			ID:   fmt.Sprintf("%s_plain_%d", prefix, segmentID),
			Text: s,
			Kind: KindPlain,
		})
		segmentID++
	}

	lastEnd := 0
	for i, m := range matches {
		start, end := m[0], m[1]
		if start > lastEnd {
			plain(text[lastEnd:start])
		} else if i > 0 {
			// Adjacent tags: keep a visual gap between the words.
			plain(" ")
		}

		segments = append(segments, TextSegment{
			ID:          fmt.Sprintf("%s_foreign_%d", prefix, segmentID),
			Text:        text[m[2]:m[3]],
			Kind:        KindForeign,
			Translation: text[m[4]:m[5]],
		})
		segmentID++
		lastEnd = end
	}

	if lastEnd < len(text) {
		plain(text[lastEnd:])
	}

	return ParsedText{Segments: segments, HasForeignWords: true}
}

// StripMarkup replaces every foreign-word tag with its word, leaving the
// surrounding text untouched.
func StripMarkup(text string) string {
	return foreignWordRegexp.ReplaceAllString(text, "$1")
}

// ExtractPairs returns every word/translation pair in order of appearance.
// A word occurring twice yields two entries.
func ExtractPairs(text string) []Pair {
	matches := foreignWordRegexp.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	pairs := make([]Pair, 0, len(matches))
	for _, m := range matches {
		pairs = append(pairs, Pair{Word: m[1], Translation: m[2]})
	}
	return pairs
}
