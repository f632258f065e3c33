package bandit

import (
	"strconv"
	"strings"

	"campusMatching/domain"
)

const (
	yearWidth   = 5
	dayWidth    = 7
	bucketWidth = 3
)

var yearCategories = []string{"freshman", "sophomore", "junior", "senior"}

var dayOrder = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// Dim returns the feature vector width for a vocabulary of v tags.
func Dim(v int) int {
	return yearWidth + 2*v + dayWidth + bucketWidth + 2 + 1
}

// Encoder maps a (student, club) pair to a fixed-width feature vector.
//
// Layout, for V = vocabulary length:
//
//	[0, 5)          student year one-hot (freshman..senior, other)
//	[5, 5+V)        student interests multi-hot
//	[5+V, 5+2V)     club tags multi-hot
//	[5+2V, 12+2V)   meeting day one-hot (mon..sun)
//	[12+2V, 15+2V)  meeting time bucket one-hot (morning, afternoon, evening)
//	15+2V           tag overlap count
//	16+2V           tag Jaccard similarity
//	17+2V           bias, always 1.0
type Encoder struct {
	vocab Vocabulary
}

func NewEncoder(vocab Vocabulary) *Encoder {
	return &Encoder{vocab: vocab}
}

var defaultEncoder = NewEncoder(defaultVocabulary)

// DefaultEncoder encodes against DefaultVocabulary (38 dimensions).
func DefaultEncoder() *Encoder {
	return defaultEncoder
}

func (e *Encoder) Dim() int {
	return Dim(e.vocab.Len())
}

func (e *Encoder) Vocabulary() Vocabulary {
	return e.vocab
}

// Encode builds the feature vector. Malformed fields fall back to their
// default encoding; Encode never fails.
func (e *Encoder) Encode(student domain.Student, club domain.Club) []float64 {
	v := e.vocab.Len()
	x := make([]float64, e.Dim())

	studentTags := e.vocab.ParseTags(student.Interests)
	clubTags := e.vocab.ParseTags(club.Tags)

	off := 0
	encodeYear(x[off:off+yearWidth], student.Year)
	off += yearWidth

	e.encodeTags(x[off:off+v], studentTags)
	off += v

	e.encodeTags(x[off:off+v], clubTags)
	off += v

	encodeMeetingTime(x[off:off+dayWidth], x[off+dayWidth:off+dayWidth+bucketWidth], club.MeetingTime)
	off += dayWidth + bucketWidth

	overlap, jaccard := tagInteractions(studentTags, clubTags)
	x[off] = overlap
	x[off+1] = jaccard
	x[off+2] = 1.0

	return x
}

// BuildFeatureVector encodes with the default encoder.
func BuildFeatureVector(student domain.Student, club domain.Club) []float64 {
	return defaultEncoder.Encode(student, club)
}

func encodeYear(dst []float64, year string) {
	y := strings.ToLower(strings.TrimSpace(year))
	for i, c := range yearCategories {
		if y == c {
			dst[i] = 1.0
			return
		}
	}
	dst[len(dst)-1] = 1.0 // other
}

func (e *Encoder) encodeTags(dst []float64, tags TagSet) {
	for t := range tags {
		if i, ok := e.vocab.Index(t); ok {
			dst[i] = 1.0
		}
	}
}

// encodeMeetingTime parses "Day HH:MM". Only the first three characters of
// the day are significant, so "Tuesday" reads as "tue".
func encodeMeetingTime(day, bucket []float64, meetingTime string) {
	parts := strings.Fields(meetingTime)
	if len(parts) < 2 {
		return
	}

	d := strings.ToLower(parts[0])
	if r := []rune(d); len(r) > 3 {
		d = string(r[:3])
	}
	for i, name := range dayOrder {
		if d == name {
			day[i] = 1.0
			break
		}
	}

	hourStr, _, _ := strings.Cut(parts[1], ":")
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return
	}
	switch {
	case hour < 0 || hour > 23:
	case hour < 12:
		bucket[0] = 1.0 // morning
	case hour < 17:
		bucket[1] = 1.0 // afternoon
	default:
		bucket[2] = 1.0 // evening
	}
}

func tagInteractions(studentTags, clubTags TagSet) (overlap, jaccard float64) {
	inter := studentTags.IntersectionLen(clubTags)
	union := studentTags.UnionLen(clubTags)

	overlap = float64(inter)
	if union > 0 {
		jaccard = float64(inter) / float64(union)
	}
	return overlap, jaccard
}
