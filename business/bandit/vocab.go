package bandit

import (
	"fmt"
	"strings"
)

// Vocabulary is the ordered tag catalog shared by student interests and club
// tags. The order defines the multi-hot index of every tag, so it must not
// change once vectors have been encoded against it.
type Vocabulary struct {
	tags  []string
	index map[string]int
}

var defaultTags = []string{
	"academic_stem_tech",   // academic / STEM / tech / CS / engineering
	"business_career",      // business, entrepreneurship, finance, career prep
	"creative_arts",        // music, art, design, theater, film
	"sports",               // sports, fitness, outdoor activities
	"gaming",               // video games, e-sports, board games
	"service",              // community service, volunteering, leadership
	"activism_environment", // social justice, human rights, climate
	"politics",             // politics, debate, Model UN
	"cultural",             // cultural, international, identity-based groups
	"faith",                // faith-based / religious groups
}

var defaultVocabulary = mustVocabulary(defaultTags...)

// DefaultVocabulary returns the 10-tag reference vocabulary.
func DefaultVocabulary() Vocabulary {
	return defaultVocabulary
}

// NewVocabulary builds a vocabulary from lower-case, unique, non-empty tags.
func NewVocabulary(tags ...string) (Vocabulary, error) {
	if len(tags) == 0 {
		return Vocabulary{}, fmt.Errorf("%w: vocabulary is empty", ErrInvalidConfig)
	}

	v := Vocabulary{
		tags:  make([]string, 0, len(tags)),
		index: make(map[string]int, len(tags)),
	}
	for _, t := range tags {
		if t == "" || t != strings.ToLower(strings.TrimSpace(t)) {
			return Vocabulary{}, fmt.Errorf("%w: invalid tag %q", ErrInvalidConfig, t)
		}
		if _, dup := v.index[t]; dup {
			return Vocabulary{}, fmt.Errorf("%w: duplicate tag %q", ErrInvalidConfig, t)
		}
		v.index[t] = len(v.tags)
		v.tags = append(v.tags, t)
	}

	return v, nil
}

func mustVocabulary(tags ...string) Vocabulary {
	v, err := NewVocabulary(tags...)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Vocabulary) Len() int {
	return len(v.tags)
}

// Index returns the multi-hot slot of tag.
func (v Vocabulary) Index(tag string) (int, bool) {
	i, ok := v.index[tag]
	return i, ok
}

func (v Vocabulary) Contains(tag string) bool {
	_, ok := v.index[tag]
	return ok
}

// Tags returns a copy of the tags in index order.
func (v Vocabulary) Tags() []string {
	out := make([]string, len(v.tags))
	copy(out, v.tags)
	return out
}
