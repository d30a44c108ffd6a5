package lyrics

import (
	"errors"
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		want    string
		wantErr error
	}{
		{
			name: "lyrics containers",
			html: `<html><body>
				<div data-lyrics-container="true">[Intro]<br/>Is this the real life?<br/>Is this just fantasy?</div>
				<div data-lyrics-container="true">Caught in a landslide</div>
			</body></html>`,
			want: "[Intro]\nIs this the real life?\nIs this just fantasy?\nCaught in a landslide",
		},
		{
			name: "excluded header inside container",
			html: `<div data-lyrics-container="true"><div data-exclude-from-selection="true">12 Contributors</div>First line<br>Second line</div>`,
			want: "First line\nSecond line",
		},
		{
			name: "legacy layout",
			html: `<div class="lyrics"><p>Old line one<br>Old line two</p></div>`,
			want: "Old line one\nOld line two",
		},
		{
			name:    "no lyrics markup",
			html:    `<html><body><div class="instrumental">This song is an instrumental</div></body></html>`,
			wantErr: ErrNoLyrics,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(strings.NewReader(tt.html))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Extract() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Extract() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemoveSectionHeaders(t *testing.T) {
	in := "[Verse 1]\nline a\nline b\n\n[Chorus]\nline c"
	want := "line a\nline b\n\nline c"
	if got := RemoveSectionHeaders(in); got != want {
		t.Errorf("RemoveSectionHeaders() = %q, want %q", got, want)
	}
}

func TestStripHeader(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "header before lyrics",
			text: "123 ContributorsBohemian Rhapsody Lyrics\nIs this the real life?\nIs this just fantasy?\nCaught in a landslide, no escape from reality",
			want: "Is this the real life?\nIs this just fantasy?\nCaught in a landslide, no escape from reality",
		},
		{
			name: "no marker",
			text: "  plain lyric body  ",
			want: "plain lyric body",
		},
		{
			name: "marker in second half is kept",
			text: "the song goes on and on for a while\nuntil it sings about Lyrics",
			want: "the song goes on and on for a while\nuntil it sings about Lyrics",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHeader(tt.text); got != tt.want {
				t.Errorf("StripHeader() = %q, want %q", got, tt.want)
			}
		})
	}
}

// The first-half rule is an approximation: a genuine early "Lyrics" in the
// song body is mistaken for the header boundary.
func TestStripHeader_KnownApproximation(t *testing.T) {
	text := "Lyrics on my mind\nsecond line of the song\nthird line of the song"
	got := StripHeader(text)
	if strings.HasPrefix(got, "Lyrics") {
		t.Fatalf("expected heuristic to cut at the early marker, got %q", got)
	}
	if got != "on my mind\nsecond line of the song\nthird line of the song" {
		t.Errorf("StripHeader() = %q", got)
	}
}
