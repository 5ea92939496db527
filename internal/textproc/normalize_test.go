package textproc

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "punctuation and symbols",
			input: "Hello!! @world_123",
			want:  "Hello world 123",
		},
		{
			name:  "collapses whitespace",
			input: "  kinerja   pemerintah\t\nsangat baik  ",
			want:  "kinerja pemerintah sangat baik",
		},
		{
			name:  "keeps non-latin letters",
			input: "ekonomi 好 bagus!",
			want:  "ekonomi 好 bagus",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "only symbols",
			input: "!!! ??? ***",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Prabowo & Gibran: satu tahun!",
		"Economy masih struggling... very disappointing!!",
		"   ",
		"plain text already",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestMarkdownToText(t *testing.T) {
	input := "Baca [laporan lengkap](https://example.com/report) di sini. **Bagus** sekali."
	got := MarkdownToText(input)

	if want := "Baca laporan lengkap di sini. Bagus sekali."; got != want {
		t.Errorf("MarkdownToText = %q, want %q", got, want)
	}
}

func TestStripLinks(t *testing.T) {
	got := StripLinks("lihat https://example.com/x dan www.example.org/y sekarang")
	want := "lihat  dan  sekarang"
	if got != want {
		t.Errorf("StripLinks = %q, want %q", got, want)
	}
}
