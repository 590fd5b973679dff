package autograde

import (
	"strings"
	"testing"
)

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	got := Normalize("  one\t\ttwo  \n\n\n three \r\n four  ", FormatPlain)
	want := "one two\nthree\nfour"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestNormalizeStripsHTML(t *testing.T) {
	in := "<p>First&nbsp;line</p><p>Second <b>bold</b> line</p>"
	got := Normalize(in, FormatHTML)
	want := "First line\nSecond bold line"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"  lots \t of   space  ",
		"a\n\n\nb\n  c  \n\nd",
		"<div>html <br> fragment &amp; entity</div>",
	}
	for _, in := range inputs {
		for _, f := range []TextFormat{FormatPlain, FormatHTML} {
			once := Normalize(in, f)
			twice := Normalize(once, f)
			if once != twice {
				t.Fatalf("not idempotent for %q (format %d): %q != %q", in, f, once, twice)
			}
		}
	}
}

func TestIsSimilarExactAndEmpty(t *testing.T) {
	if !IsSimilar("", "", 10) {
		t.Fatalf("both empty should be similar")
	}
	if !IsSimilar("same text", "same text", 10) {
		t.Fatalf("equal strings should be similar")
	}
	if IsSimilar("completely different words here", "zzzz qqqq", 10) {
		t.Fatalf("unrelated strings should not be similar")
	}
}

func TestIsSimilarShortEditDistance(t *testing.T) {
	// One edit in a 20-rune string is 5% dissimilar.
	a := "the quick brown fox!"
	b := "the quick brown fox?"
	if !IsSimilar(a, b, 10) {
		t.Fatalf("expected similar under 10%% threshold")
	}
	if IsSimilar(a, b, 1) {
		t.Fatalf("expected dissimilar under 1%% threshold")
	}
}

func TestIsSimilarLongTexts(t *testing.T) {
	base := strings.Repeat("all work and no play makes a dull essay. ", 10)
	if !IsSimilar(base, base+"extra!", 10) {
		t.Fatalf("small addition to a long text should stay similar")
	}
	other := strings.Repeat("totally unrelated response content here. ", 10)
	if IsSimilar(base, other, 10) {
		t.Fatalf("different long texts should not be similar")
	}
}

func TestIsSimilarStripsTags(t *testing.T) {
	if !IsSimilar("<p>hello world</p>", "hello world", 10) {
		t.Fatalf("markup should not count toward dissimilarity")
	}
}
