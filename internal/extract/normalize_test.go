package extract

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	cases := []struct {
		ext  string
		want Format
	}{
		{".pdf", FormatPDF},
		{"pdf", FormatPDF},
		{".TXT", FormatTXT},
		{".text", FormatTXT},
		{".md", FormatMD},
		{".markdown", FormatMD},
		{".csv", FormatCSV},
		{".tsv", FormatTSV},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.ext)
		if err != nil {
			t.Errorf("ParseFormat(%q) returned error: %v", tc.ext, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tc.ext, got, tc.want)
		}
	}

	for _, ext := range []string{".docx", ".html", ""} {
		if _, err := ParseFormat(ext); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("ParseFormat(%q): expected ErrUnsupportedFormat, got %v", ext, err)
		}
	}
}

func TestNormalizeTrimsAndDropsEmpty(t *testing.T) {
	lines, err := Normalize("  Hund ; dog  \n\n\t\nKatze ; cat\n", FormatTXT)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text != "Hund ; dog" || lines[0].Number != 1 {
		t.Errorf("unexpected first line: %+v", lines[0])
	}
	if lines[1].Text != "Katze ; cat" || lines[1].Number != 4 {
		t.Errorf("unexpected second line: %+v", lines[1])
	}
}

func TestNormalizePDFJoinsHyphenWraps(t *testing.T) {
	raw := "Die Vokabel wird zusammen-\ngesetzt geschrieben.\nZweite-Zeile bleibt.\n"
	lines, err := Normalize(raw, FormatPDF)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if lines[0].Text != "Die Vokabel wird zusammengesetzt geschrieben." {
		t.Errorf("hyphen wrap not joined: %q", lines[0].Text)
	}
	// An in-word hyphen not at end of line stays untouched.
	if lines[1].Text != "Zweite-Zeile bleibt." {
		t.Errorf("inline hyphen mangled: %q", lines[1].Text)
	}
}

func TestNormalizePDFKeepsHyphenBeforeUppercase(t *testing.T) {
	raw := "Nord-\nSüd-Gefälle\n"
	lines, err := Normalize(raw, FormatPDF)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	// "Süd" starts uppercase, so this is a real compound hyphen, not a wrap.
	if len(lines) != 2 || lines[0].Text != "Nord-" {
		t.Errorf("uppercase continuation was joined: %+v", lines)
	}
}

func TestNormalizeMarkdownStripsMarkers(t *testing.T) {
	raw := "# Vokabeln\n- Hund ; dog\n* Katze ; cat\n> Maus ; mouse\n" +
		"1. Vogel ; bird\n12) Fisch ; fish\n3.Pferd ; horse\n1984 war kalt\n"
	lines, err := Normalize(raw, FormatMD)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	// Numbered-list markers need the trailing space; bare numbers and
	// "3.Pferd" are kept as written.
	want := []string{"Vokabeln", "Hund ; dog", "Katze ; cat", "Maus ; mouse",
		"Vogel ; bird", "Fisch ; fish", "3.Pferd ; horse", "1984 war kalt"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, w := range want {
		if lines[i].Text != w {
			t.Errorf("line %d: got %q, want %q", i, lines[i].Text, w)
		}
	}
}

func TestNormalizeCSVSplitsColumns(t *testing.T) {
	lines, err := Normalize("Hund,dog\n\"die Katze, klein\",cat\n", FormatCSV)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if len(lines[0].Fields) != 2 || lines[0].Fields[0] != "Hund" || lines[0].Fields[1] != "dog" {
		t.Errorf("unexpected fields: %v", lines[0].Fields)
	}
	// Quoted comma stays inside the first column.
	if lines[1].Fields[0] != "die Katze, klein" {
		t.Errorf("quoted field mishandled: %v", lines[1].Fields)
	}
}

func TestNormalizeTSVSplitsColumns(t *testing.T) {
	lines, err := Normalize("Hund\tdog\n", FormatTSV)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(lines[0].Fields) != 2 || lines[0].Fields[1] != "dog" {
		t.Errorf("unexpected fields: %v", lines[0].Fields)
	}
}

func TestNormalizeEmptyDocument(t *testing.T) {
	for _, raw := range []string{"", "\n\n\n", "   \n\t\n"} {
		if _, err := Normalize(raw, FormatTXT); !errors.Is(err, ErrEmptyDocument) {
			t.Errorf("Normalize(%q): expected ErrEmptyDocument, got %v", raw, err)
		}
	}
}

func TestNormalizeRejectsUnknownFormat(t *testing.T) {
	if _, err := Normalize("text", Format("docx")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}
