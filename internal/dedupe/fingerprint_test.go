package dedupe

import (
	"testing"

	"github.com/vocabrecall/vocabrecall/internal/domain"
)

func TestKeyNormalizes(t *testing.T) {
	c := domain.Candidate{Front: "  Der Hund \r\n", Back: "The Dog"}
	if got, want := Key(c), "der hund\nthe dog"; got != want {
		t.Errorf("Key = %q, want %q", got, want)
	}
}

func TestFingerprintStableUnderFormatting(t *testing.T) {
	a := domain.Candidate{Front: "  der Hund ", Back: "the dog"}
	b := domain.Candidate{Front: "Der Hund", Back: "The Dog"}
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("formatting differences changed the fingerprint")
	}
}

func TestFingerprintSeparatesFields(t *testing.T) {
	a := domain.Candidate{Front: "Hund", Back: "dog"}
	b := domain.Candidate{Front: "Hun", Back: "ddog"}
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("field boundary collision")
	}
}

func TestFingerprintDiffersOnContent(t *testing.T) {
	a := domain.Candidate{Front: "Hund", Back: "dog"}
	b := domain.Candidate{Front: "Katze", Back: "cat"}
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("different candidates share a fingerprint")
	}
}
