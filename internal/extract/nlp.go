package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vocabrecall/vocabrecall/internal/domain"
)

// TaggedToken is one token as analyzed by a linguistic backend.
type TaggedToken struct {
	Token  string
	Lemma  string
	POS    string // universal tag: NOUN, VERB, ADJ, ...
	Gender string // Masc / Fem / Neut for nouns, empty when unknown
}

// Tagger is the linguistic analysis backend. Implementations wrap an
// external NLP service or model; a nil Tagger means the backend is
// unavailable and extraction degrades to the regex fallback.
type Tagger interface {
	TokenizeAndTag(text string) ([]TaggedToken, error)
}

// Glosser supplies translations for extracted lemmas, e.g. from a
// dictionary file. Optional: without one, candidates carry their front
// as a placeholder back.
type Glosser interface {
	Gloss(lemma string) (string, bool)
}

const minTokenLen = 3

var vocabularyPOS = map[string]bool{"NOUN": true, "VERB": true, "ADJ": true}

// genderArticles maps universal-feature gender values to German articles.
var genderArticles = map[string]string{
	"Masc": "der",
	"Fem":  "die",
	"Neut": "das",
}

// ExtractLinguistic derives vocabulary candidates from free text using a
// linguistic backend. It keeps NOUN/VERB/ADJ tokens, drops stop-words
// and tokens shorter than three runes, and deduplicates by lowercased
// lemma in first-seen order, so identical input always yields identical
// output.
func ExtractLinguistic(lines []Line, tagger Tagger, glosser Glosser) ([]domain.Candidate, error) {
	candidates := []domain.Candidate{}
	seen := make(map[string]bool)

	for _, line := range lines {
		tokens, err := tagger.TokenizeAndTag(line.Text)
		if err != nil {
			return nil, fmt.Errorf("tagging line %d: %w", line.Number, err)
		}
		for _, tok := range tokens {
			if !vocabularyPOS[tok.POS] {
				continue
			}
			if utf8.RuneCountInString(tok.Token) < minTokenLen {
				continue
			}
			lemma := tok.Lemma
			if lemma == "" {
				lemma = tok.Token
			}
			key := strings.ToLower(lemma)
			if germanStopWords[key] || seen[key] {
				continue
			}
			seen[key] = true

			// Nouns keep their surface form, verbs and adjectives are
			// reduced to the lemma, matching dictionary headwords.
			front := lemma
			if tok.POS == "NOUN" {
				front = tok.Token
			}
			candidates = append(candidates, domain.Candidate{
				Front:      front,
				Back:       glossOrSelf(glosser, lemma, front),
				Article:    genderArticles[tok.Gender],
				WordType:   tok.POS,
				Example:    line.Text,
				SourceLine: line.Number,
				Confidence: domain.ConfidenceNLP,
			})
		}
	}
	return candidates, nil
}

// Word-like tokens including German umlauts and ß. Matching maximal
// letter runs instead of \b-anchored words: regexp's \b is ASCII-only
// and misses boundaries before Ä/Ö/Ü.
var fallbackWordRe = regexp.MustCompile(`[A-ZÄÖÜa-zäöüß]{3,}`)

// ExtractFallback is the degraded extraction mode used when no linguistic
// backend is available. Capitalized tokens stand in for German nouns;
// lowercase tokens with infinitive suffixes stand in for verbs. Same
// stop-word, length and dedup rules as the linguistic mode.
func ExtractFallback(lines []Line, glosser Glosser) []domain.Candidate {
	candidates := []domain.Candidate{}
	seen := make(map[string]bool)

	for _, line := range lines {
		for _, word := range fallbackWordRe.FindAllString(line.Text, -1) {
			key := strings.ToLower(word)
			if germanStopWords[key] || seen[key] {
				continue
			}

			var wordType string
			switch {
			case startsUpper(word):
				wordType = "NOUN"
			case strings.HasSuffix(key, "ieren"), strings.HasSuffix(key, "en"):
				wordType = "VERB"
			default:
				continue
			}
			seen[key] = true

			candidates = append(candidates, domain.Candidate{
				Front:      word,
				Back:       glossOrSelf(glosser, key, word),
				WordType:   wordType,
				Example:    line.Text,
				SourceLine: line.Number,
				Confidence: domain.ConfidenceRegex,
			})
		}
	}
	return candidates
}

func glossOrSelf(glosser Glosser, lemma, front string) string {
	if glosser != nil {
		if gloss, ok := glosser.Gloss(lemma); ok {
			return gloss
		}
	}
	return front
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
