package domain

import (
	"fmt"
	"time"

	"github.com/vocabrecall/vocabrecall/internal/srs"
)

// Card is a persisted flashcard together with its scheduling state.
type Card struct {
	ID       int64
	DeckID   int64
	Front    string
	Back     string
	Article  string // der / die / das, when known
	WordType string // NOUN, VERB, ADJ
	Example  string
	Hash     string
	Position int // insertion order within the deck
	State    srs.State
}

// Confidence records which extraction path produced a candidate.
type Confidence int

const (
	ConfidenceStructured Confidence = iota // parsed from a front;back list
	ConfidenceNLP                          // linguistic backend
	ConfidenceRegex                        // degraded pattern-matching mode
)

var confidenceNames = [...]string{
	ConfidenceStructured: "structured",
	ConfidenceNLP:        "nlp",
	ConfidenceRegex:      "regex_fallback",
}

// String returns the storage name of the confidence level.
func (c Confidence) String() string {
	if c >= 0 && int(c) < len(confidenceNames) {
		return confidenceNames[c]
	}
	return fmt.Sprintf("Confidence(%d)", int(c))
}

// ParseConfidence is the inverse of String.
func ParseConfidence(s string) (Confidence, error) {
	for i, name := range confidenceNames {
		if s == name {
			return Confidence(i), nil
		}
	}
	return 0, fmt.Errorf("unknown confidence %q", s)
}

// Candidate is an unconfirmed front/back pair extracted from a document,
// immutable once emitted by the extraction pipeline. Back may equal Front
// when no gloss source was available; back-filling is then the caller's
// job, not something the pipeline skips silently.
type Candidate struct {
	Front      string
	Back       string
	Article    string
	WordType   string
	Example    string
	SourceLine int // 1-based line in the normalized document, 0 if unknown
	Confidence Confidence
}

// ReviewLog records a single review event for a card.
type ReviewLog struct {
	CardID        int64
	Grade         int
	EaseAfter     float64
	IntervalAfter int
	ReviewedAt    time.Time
}

// Deck is a collection of flashcards imported from one or more documents.
type Deck struct {
	ID             int64
	FolderID       int64
	Name           string
	SourceFilename string
	CreatedAt      time.Time
}

// Folder groups decks hierarchically. ParentID is 0 for top-level folders.
type Folder struct {
	ID       int64
	ParentID int64
	Name     string
}
