package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vocabrecall/vocabrecall/internal/extract"
	"github.com/vocabrecall/vocabrecall/internal/storage"
)

var t0 = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func testImporter(t *testing.T) (*Importer, *storage.DB, int64) {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	folderID, err := db.CreateFolder("Imported", 0)
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	deckID, err := db.CreateDeck(folderID, "german", "")
	if err != nil {
		t.Fatalf("CreateDeck: %v", err)
	}

	pipeline := extract.NewPipeline(nil, nil, nil)
	return New(db, pipeline, extract.DefaultConfig()), db, deckID
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestImportFileStructuredList(t *testing.T) {
	imp, db, deckID := testImporter(t)
	path := writeFile(t, t.TempDir(), "words.txt", "Hund ; dog\nKatze ; cat\n")

	report, err := imp.ImportFile(path, deckID, t0)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if report.Mode != extract.ModeStructured {
		t.Errorf("mode = %v, want structured", report.Mode)
	}
	if report.Candidates != 2 || report.Inserted != 2 {
		t.Errorf("report = %+v, want 2/2", report)
	}

	// Importing the same file again inserts nothing new.
	report, err = imp.ImportFile(path, deckID, t0)
	if err != nil {
		t.Fatalf("ImportFile (again): %v", err)
	}
	if report.Inserted != 0 {
		t.Errorf("re-import inserted %d cards", report.Inserted)
	}

	cards, err := db.CardsForSession(deckID, false, t0)
	if err != nil {
		t.Fatalf("CardsForSession: %v", err)
	}
	if len(cards) != 2 {
		t.Errorf("expected 2 cards, got %d", len(cards))
	}
}

func TestImportFileFreeTextDegrades(t *testing.T) {
	imp, _, deckID := testImporter(t)
	path := writeFile(t, t.TempDir(), "prose.txt",
		"Der Hund möchte heute spazieren gehen.\n")

	report, err := imp.ImportFile(path, deckID, t0)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if report.Mode != extract.ModeFallback || !report.Degraded {
		t.Errorf("expected degraded fallback without a tagger, got %+v", report)
	}
	if report.Inserted == 0 {
		t.Error("fallback extraction found nothing")
	}
}

func TestImportFileEmptyResultIsNotAnError(t *testing.T) {
	imp, _, deckID := testImporter(t)
	path := writeFile(t, t.TempDir(), "empty.txt", "und oder aber\n")

	report, err := imp.ImportFile(path, deckID, t0)
	if err != nil {
		t.Fatalf("a document with no vocabulary must not fail: %v", err)
	}
	if report.Candidates != 0 || report.Inserted != 0 {
		t.Errorf("report = %+v, want 0/0", report)
	}
}

func TestImportFileRejectsUnsupported(t *testing.T) {
	imp, _, deckID := testImporter(t)
	dir := t.TempDir()

	docx := writeFile(t, dir, "words.docx", "Hund ; dog\n")
	if _, err := imp.ImportFile(docx, deckID, t0); !errors.Is(err, extract.ErrUnsupportedFormat) {
		t.Errorf("docx: expected ErrUnsupportedFormat, got %v", err)
	}

	// PDFs need upstream text extraction; the raw bytes are not parsed.
	pdf := writeFile(t, dir, "words.pdf", "%PDF-1.4")
	if _, err := imp.ImportFile(pdf, deckID, t0); !errors.Is(err, extract.ErrUnsupportedFormat) {
		t.Errorf("pdf: expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestImportTextPDFHandsOffExtractedText(t *testing.T) {
	imp, _, deckID := testImporter(t)

	// Text as handed over by an external PDF extractor, wraps included.
	raw := "Hund ; dog\nKatze ; cat\nFlug-\nzeug ; airplane\n"
	report, err := imp.ImportText(raw, extract.FormatPDF, deckID, t0)
	if err != nil {
		t.Fatalf("ImportText: %v", err)
	}
	if report.Candidates != 3 {
		t.Errorf("expected 3 candidates after de-hyphenation, got %d", report.Candidates)
	}
}

func TestImportFileWindows1252(t *testing.T) {
	imp, db, deckID := testImporter(t)
	// "Bär ; bear" in Windows-1252: 0xE4 is ä.
	raw := []byte{'B', 0xE4, 'r', ' ', ';', ' ', 'b', 'e', 'a', 'r', '\n', 'H', 'u', 'n', 'd', ' ', ';', ' ', 'd', 'o', 'g', '\n'}
	path := filepath.Join(t.TempDir(), "legacy.txt")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	report, err := imp.ImportFile(path, deckID, t0)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if report.Inserted != 2 {
		t.Fatalf("expected 2 cards from legacy encoding, got %d", report.Inserted)
	}
	cards, _ := db.CardsForSession(deckID, false, t0)
	if cards[0].Front != "Bär" {
		t.Errorf("umlaut not decoded: %q", cards[0].Front)
	}
}

func TestImportTreeWalksSupportedFiles(t *testing.T) {
	imp, db, deckID := testImporter(t)
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "Hund ; dog\n")
	writeFile(t, dir, "b.csv", "Katze,cat\n")
	writeFile(t, dir, "notes.docx", "ignored")
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, sub, "c.md", "- Maus ; mouse\n")

	if _, err := db.InsertSource(dir, "local", deckID); err != nil {
		t.Fatalf("InsertSource: %v", err)
	}
	if err := imp.SyncAll(t.TempDir(), t0); err != nil {
		t.Fatalf("SyncAll: %v", err)
	}

	cards, err := db.CardsForSession(deckID, false, t0)
	if err != nil {
		t.Fatalf("CardsForSession: %v", err)
	}
	if len(cards) != 3 {
		t.Errorf("expected 3 cards from the tree, got %d", len(cards))
	}

	sources, _ := db.GetAllSources()
	if !sources[0].LastScanned.Valid {
		t.Error("source not stamped after sync")
	}
}
