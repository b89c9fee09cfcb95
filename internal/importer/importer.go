// Package importer feeds decks from document sources: it walks local
// directories or mirrored git repositories, runs each supported file
// through the extraction pipeline, and persists unseen candidates.
package importer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/vocabrecall/vocabrecall/internal/dedupe"
	"github.com/vocabrecall/vocabrecall/internal/extract"
	"github.com/vocabrecall/vocabrecall/internal/gitsource"
	"github.com/vocabrecall/vocabrecall/internal/storage"
)

// Importer runs document imports against one database.
type Importer struct {
	db       *storage.DB
	pipeline *extract.Pipeline
	cfg      extract.Config
}

// New wires an importer. cfg is applied to every pipeline run.
func New(db *storage.DB, pipeline *extract.Pipeline, cfg extract.Config) *Importer {
	return &Importer{db: db, pipeline: pipeline, cfg: cfg}
}

// Report summarizes one document import.
type Report struct {
	Candidates int
	Inserted   int
	Mode       extract.Mode
	Degraded   bool
}

// ImportFile extracts candidates from a single document and inserts the
// previously unseen ones into the deck. An empty extraction result is a
// valid report with zero candidates, not an error.
//
// PDF files are not read here: PDF text extraction is an external
// collaborator's job, and its output enters through ImportText.
func (im *Importer) ImportFile(path string, deckID int64, today time.Time) (Report, error) {
	format, err := extract.ParseFormat(filepath.Ext(path))
	if err != nil {
		return Report{}, fmt.Errorf("import %s: %w", path, err)
	}
	if format == extract.FormatPDF {
		return Report{}, fmt.Errorf("import %s: pdf text must be extracted upstream: %w",
			path, extract.ErrUnsupportedFormat)
	}

	raw, err := readTextFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("import %s: %w", path, err)
	}
	return im.ImportText(raw, format, deckID, today)
}

// ImportText runs already-loaded document text through the pipeline and
// persists the result.
func (im *Importer) ImportText(raw string, format extract.Format, deckID int64, today time.Time) (Report, error) {
	result, err := im.pipeline.Extract(raw, format, im.cfg)
	if err != nil {
		return Report{}, err
	}

	inserted, err := im.db.InsertCandidates(deckID, result.Candidates, dedupe.Fingerprint, today)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Candidates: len(result.Candidates),
		Inserted:   inserted,
		Mode:       result.Mode,
		Degraded:   result.Degraded,
	}, nil
}

// SyncAll reconciles every registered source. Git sources are cloned or
// pulled into reposDir first, then walked like local directories.
// Failures are logged per source and do not stop the run.
func (im *Importer) SyncAll(reposDir string, today time.Time) error {
	sources, err := im.db.GetAllSources()
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}
	if len(sources) == 0 {
		slog.Info("no sources configured")
		return nil
	}

	for _, source := range sources {
		root := source.Path
		if source.Type == "git" {
			root, err = gitsource.LocalPath(reposDir, source.Path)
			if err != nil {
				slog.Error("bad git source url", "url", source.Path, "error", err)
				continue
			}
			if err := gitsource.Sync(source.Path, root); err != nil {
				slog.Error("git sync failed", "url", source.Path, "error", err)
				continue
			}
		}

		if err := im.importTree(root, source.DeckID, today); err != nil {
			slog.Error("source import failed", "path", root, "error", err)
			continue
		}
		if err := im.db.UpdateSourceLastScanned(source.ID); err != nil {
			slog.Warn("failed to stamp source", "id", source.ID, "error", err)
		}
	}
	return nil
}

// importTree imports every supported document under root into the deck.
func (im *Importer) importTree(root string, deckID int64, today time.Time) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		format, ferr := extract.ParseFormat(filepath.Ext(path))
		if ferr != nil {
			return nil // not a vocabulary document
		}
		if format == extract.FormatPDF {
			slog.Debug("skipping pdf, text extraction happens upstream", "path", path)
			return nil
		}

		report, err := im.ImportFile(path, deckID, today)
		if err != nil {
			// A bad document aborts that document only, per the
			// no-partial-import rule; the walk continues.
			slog.Error("document import failed", "path", path, "error", err)
			return nil
		}
		slog.Info("document imported",
			"path", path,
			"mode", report.Mode.String(),
			"candidates", report.Candidates,
			"inserted", report.Inserted,
			"degraded", report.Degraded,
		)
		return nil
	})
}

// readTextFile loads a document as UTF-8, decoding legacy Windows-1252
// word lists when the bytes are not valid UTF-8.
func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("could not decode %s: %w", path, err)
	}
	return string(decoded), nil
}
