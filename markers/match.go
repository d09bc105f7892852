// SPDX-License-Identifier: EPL-2.0

package markers

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/ik5/wavcue/formats/wav/cue"
)

var (
	verseStrict   = regexp.MustCompile(`^orature-vm-(\d+)(?:-(\d+))?$`)
	chunkStrict   = regexp.MustCompile(`^orature-chunk-(\d+)$`)
	chapterStrict = regexp.MustCompile(`^orature-chapter-(\d+)$`)
	bookStrict    = regexp.MustCompile(`^orature-book-(.+)$`)

	loneRange  = regexp.MustCompile(`^(\d+)(?:-(\d+))?$`)
	loneNumber = regexp.MustCompile(`^(\d+)$`)
	digitRun   = regexp.MustCompile(`\d+`)
)

// isStrict reports whether label has the strict form of kind k.
func isStrict(k Kind, label string) bool {
	switch k {
	case KindVerse:
		return verseStrict.MatchString(label)
	case KindChunk:
		return chunkStrict.MatchString(label)
	case KindChapterTitle:
		return chapterStrict.MatchString(label)
	case KindBookTitle:
		return bookStrict.MatchString(label)
	case KindLicense:
		return label == LicenseLabel
	default:
		return false
	}
}

// reserved reports whether label belongs to the strict namespace of a kind
// other than k. Reserved labels are never fallback candidates for k.
func reserved(k Kind, label string) bool {
	for _, other := range Kinds {
		if other != k && isStrict(other, label) {
			return true
		}
	}
	return false
}

// fold maps full-width digits and separators to ASCII before numeric
// fallbacks look at a label.
func fold(label string) string {
	return width.Fold.String(label)
}

// numbers parses the first and optional second submatch. A missing second
// number repeats the first. Runs too long for an int are rejected.
func numbers(sm []string) (first, second int, ok bool) {
	first, err := strconv.Atoi(sm[1])
	if err != nil {
		return 0, 0, false
	}
	second = first
	if len(sm) > 2 && sm[2] != "" {
		if second, err = strconv.Atoi(sm[2]); err != nil {
			return 0, 0, false
		}
	}
	return first, second, true
}

type buildFunc func(c cue.Cue, first, second int) Marker

// cascade matches one numbered kind with three strategies chosen once for
// the whole cue set: strict labels, then bare numbers, then the first digit
// run of each label. A strategy runs only when every earlier one accepted
// nothing.
type cascade struct {
	kind   Kind
	strict *regexp.Regexp
	lone   *regexp.Regexp
	build  buildFunc
}

// match runs the strategies over cues. Labels in another kind's strict
// namespace (orature-chunk-3, orature-chapter-2, ...) are never fallback
// candidates: they neither count against the bare number strategy, which
// needs every other remaining cue to be a bare number, nor feed the
// embedded number strategy. They stay in rest for their own matcher.
func (c cascade) match(cues []cue.Cue) ([]Marker, []cue.Cue) {
	if matched, rest := c.matchStrict(cues); len(matched) > 0 {
		return matched, rest
	}
	if matched, rest := c.matchLone(cues); len(matched) > 0 {
		return matched, rest
	}
	return c.matchEmbedded(cues)
}

func (c cascade) matchStrict(cues []cue.Cue) (matched []Marker, rest []cue.Cue) {
	for _, q := range cues {
		sm := c.strict.FindStringSubmatch(q.Label)
		if sm == nil {
			rest = append(rest, q)
			continue
		}
		first, second, ok := numbers(sm)
		if !ok {
			rest = append(rest, q)
			continue
		}
		matched = append(matched, c.build(q, first, second))
	}
	return matched, rest
}

// matchLone accepts every candidate or none: one label that is not a bare
// number leaves the whole set to the next strategy.
func (c cascade) matchLone(cues []cue.Cue) (matched []Marker, rest []cue.Cue) {
	for _, q := range cues {
		if reserved(c.kind, q.Label) {
			rest = append(rest, q)
			continue
		}
		sm := c.lone.FindStringSubmatch(strings.TrimSpace(fold(q.Label)))
		if sm == nil {
			return nil, cues
		}
		first, second, ok := numbers(sm)
		if !ok {
			return nil, cues
		}
		matched = append(matched, c.build(q, first, second))
	}
	return matched, rest
}

func (c cascade) matchEmbedded(cues []cue.Cue) (matched []Marker, rest []cue.Cue) {
	for _, q := range cues {
		if reserved(c.kind, q.Label) {
			rest = append(rest, q)
			continue
		}
		run := digitRun.FindString(fold(q.Label))
		if run == "" {
			rest = append(rest, q)
			continue
		}
		n, err := strconv.Atoi(run)
		if err != nil {
			rest = append(rest, q)
			continue
		}
		matched = append(matched, c.build(q, n, n))
	}
	return matched, rest
}

// strictOnly matches a kind by its strict pattern alone.
func strictOnly(re *regexp.Regexp, build func(c cue.Cue, sm []string) (Marker, bool)) matcher {
	return func(cues []cue.Cue) (matched []Marker, rest []cue.Cue) {
		for _, q := range cues {
			sm := re.FindStringSubmatch(q.Label)
			if sm == nil {
				rest = append(rest, q)
				continue
			}
			m, ok := build(q, sm)
			if !ok {
				rest = append(rest, q)
				continue
			}
			matched = append(matched, m)
		}
		return matched, rest
	}
}

var (
	verseCascade = cascade{
		kind:   KindVerse,
		strict: verseStrict,
		lone:   loneRange,
		build: func(c cue.Cue, first, second int) Marker {
			return Marker{Kind: KindVerse, Location: c.Location, Start: first, End: second, Source: c}
		},
	}

	chunkCascade = cascade{
		kind:   KindChunk,
		strict: chunkStrict,
		lone:   loneNumber,
		build: func(c cue.Cue, first, _ int) Marker {
			return Marker{Kind: KindChunk, Location: c.Location, Number: first, Source: c}
		},
	}

	chunkMatcher = strictOnly(chunkStrict, func(c cue.Cue, sm []string) (Marker, bool) {
		n, _, ok := numbers(sm)
		return Marker{Kind: KindChunk, Location: c.Location, Number: n, Source: c}, ok
	})

	chapterMatcher = strictOnly(chapterStrict, func(c cue.Cue, sm []string) (Marker, bool) {
		n, _, ok := numbers(sm)
		return Marker{Kind: KindChapterTitle, Location: c.Location, Number: n, Source: c}, ok
	})

	bookMatcher = strictOnly(bookStrict, func(c cue.Cue, sm []string) (Marker, bool) {
		return Marker{Kind: KindBookTitle, Location: c.Location, Name: sm[1], Source: c}, true
	})
)
