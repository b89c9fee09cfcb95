// Package extract turns raw document text into flashcard candidates.
//
// The pipeline runs normalization, structured-list detection, and — for
// free-text documents — NLP-assisted vocabulary extraction with a
// regex-only degraded mode. All stages are deterministic: the same input
// and config always produce the same candidates in the same order.
package extract

import (
	"log/slog"

	"github.com/vocabrecall/vocabrecall/internal/domain"
)

// Config controls a single pipeline run. Pass it explicitly per call;
// the pipeline reads no ambient state.
type Config struct {
	Language            string  // ISO code of the source language
	Delimiter           string  // structured-list separator
	StructuredThreshold float64 // majority share for structured detection
	DetectStructured    bool    // false skips straight to NLP
	NLPEnabled          bool    // false degrades to the regex fallback
	FallbackEnabled     bool    // false disables the regex fallback
}

// DefaultConfig returns the stock pipeline configuration: German input,
// ';' delimiter, structured detection on, both NLP modes available.
func DefaultConfig() Config {
	return Config{
		Language:            "de",
		Delimiter:           ";",
		StructuredThreshold: DefaultStructuredThreshold,
		DetectStructured:    true,
		NLPEnabled:          true,
		FallbackEnabled:     true,
	}
}

// Mode identifies which extraction path produced a result.
type Mode int

const (
	ModeStructured Mode = iota
	ModeNLP
	ModeFallback
)

func (m Mode) String() string {
	switch m {
	case ModeStructured:
		return "structured"
	case ModeNLP:
		return "nlp"
	case ModeFallback:
		return "fallback"
	}
	return "unknown"
}

// Result is a successful pipeline run. Candidates may be empty: a
// document with no extractable vocabulary is a valid outcome, not an
// error. Degraded reports whether the regex fallback had to stand in
// for an unavailable linguistic backend.
type Result struct {
	Candidates []domain.Candidate
	Mode       Mode
	Degraded   bool
}

// Empty reports whether the run found no vocabulary at all.
func (r Result) Empty() bool { return len(r.Candidates) == 0 }

// Pipeline orchestrates document-to-candidate extraction. The tagger and
// glosser are optional collaborators; both may be nil.
type Pipeline struct {
	tagger  Tagger
	glosser Glosser
	log     *slog.Logger
}

// NewPipeline builds a pipeline around the given collaborators.
// A nil logger falls back to slog.Default.
func NewPipeline(tagger Tagger, glosser Glosser, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{tagger: tagger, glosser: glosser, log: log}
}

// Extract runs the full pipeline on one document:
// normalize → structured detection → NLP (or regex fallback).
//
// Errors abort the whole import for the document — the caller gets either
// the complete candidate set or an error, never a truncated mix.
func (p *Pipeline) Extract(raw string, format Format, cfg Config) (Result, error) {
	lines, err := Normalize(raw, format)
	if err != nil {
		return Result{}, err
	}

	if cfg.DetectStructured {
		det := DetectStructured(lines, cfg.Delimiter, cfg.StructuredThreshold)
		if det.Structured {
			p.log.Debug("structured vocabulary list detected",
				"candidates", len(det.Candidates), "lines", len(lines))
			return Result{Candidates: det.Candidates, Mode: ModeStructured}, nil
		}
	}

	if cfg.NLPEnabled && p.tagger != nil {
		candidates, err := ExtractLinguistic(lines, p.tagger, p.glosser)
		if err != nil {
			return Result{}, err
		}
		return Result{Candidates: candidates, Mode: ModeNLP}, nil
	}

	if !cfg.FallbackEnabled {
		return Result{}, ErrExtractionUnavailable
	}

	degraded := cfg.NLPEnabled && p.tagger == nil
	if degraded {
		// Missing backend is a policy decision, not a failure.
		p.log.Warn("linguistic backend unavailable, using regex fallback")
	}
	return Result{
		Candidates: ExtractFallback(lines, p.glosser),
		Mode:       ModeFallback,
		Degraded:   degraded,
	}, nil
}
