package bandit

import (
	"regexp"
	"sort"
	"strings"
)

// TagSet is a set of vocabulary tags.
type TagSet map[string]struct{}

func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

func (s TagSet) Len() int {
	return len(s)
}

// Sorted returns the tags in lexical order.
func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func (s TagSet) IntersectionLen(other TagSet) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	n := 0
	for t := range small {
		if large.Has(t) {
			n++
		}
	}
	return n
}

func (s TagSet) UnionLen(other TagSet) int {
	return len(s) + len(other) - s.IntersectionLen(other)
}

// ParseTags splits a comma-separated string into the set of known tags.
// Tokens are trimmed and lower-cased; unknown and empty tokens are dropped.
func (v Vocabulary) ParseTags(text string) TagSet {
	tags := TagSet{}
	if text == "" {
		return tags
	}

	for _, token := range strings.Split(text, ",") {
		t := strings.ToLower(strings.TrimSpace(token))
		if t == "" {
			continue
		}
		if v.Contains(t) {
			tags[t] = struct{}{}
		}
	}

	return tags
}

// ParseTags parses against the default vocabulary.
func ParseTags(text string) TagSet {
	return defaultVocabulary.ParseTags(text)
}

var wordRe = regexp.MustCompile(`[A-Za-z0-9_]+`)

// ParseTokens extracts the lower-cased word tokens of free text.
func ParseTokens(text string) map[string]struct{} {
	tokens := map[string]struct{}{}
	if text == "" {
		return tokens
	}
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		tokens[w] = struct{}{}
	}
	return tokens
}
