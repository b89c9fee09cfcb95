package extract

import (
	"strings"

	"github.com/vocabrecall/vocabrecall/internal/domain"
)

// DefaultStructuredThreshold is the share of non-empty lines that must
// parse as "front <delimiter> back" before a document is treated as a
// structured vocabulary list. Tunable via the pipeline config.
const DefaultStructuredThreshold = 0.6

// Detection is the outcome of structured-list detection. Candidates is
// only populated when Structured is true, so a failed detection cannot
// leak a stale partial candidate list to callers.
type Detection struct {
	Structured bool
	Candidates []domain.Candidate
}

// DetectStructured classifies normalized lines as a structured vocabulary
// list and parses them into candidates.
//
// A line matches when it splits on the delimiter (first occurrence wins)
// into a non-empty front and back; csv/tsv column fields take precedence
// over delimiter splitting. Lines with an empty front or back are
// rejected as candidates but still count toward the majority total.
func DetectStructured(lines []Line, delimiter string, threshold float64) Detection {
	if delimiter == "" {
		delimiter = ";"
	}
	if threshold <= 0 {
		threshold = DefaultStructuredThreshold
	}

	var candidates []domain.Candidate
	for _, line := range lines {
		front, back, ok := splitPair(line, delimiter)
		if !ok {
			continue
		}
		candidates = append(candidates, domain.Candidate{
			Front:      front,
			Back:       back,
			SourceLine: line.Number,
			Confidence: domain.ConfidenceStructured,
		})
	}

	if len(lines) == 0 || float64(len(candidates))/float64(len(lines)) < threshold {
		return Detection{}
	}
	return Detection{Structured: true, Candidates: candidates}
}

// splitPair extracts a (front, back) pair from one line. Ambiguous lines
// with several delimiter occurrences split at the first one: everything
// after it, delimiters included, is the back.
func splitPair(line Line, delimiter string) (front, back string, ok bool) {
	if len(line.Fields) >= 2 {
		front = line.Fields[0]
		back = strings.TrimSpace(strings.Join(line.Fields[1:], " "))
	} else {
		before, after, found := strings.Cut(line.Text, delimiter)
		if !found {
			return "", "", false
		}
		front = strings.TrimSpace(before)
		back = strings.TrimSpace(after)
	}
	if front == "" || back == "" {
		return "", "", false
	}
	return front, back, true
}
