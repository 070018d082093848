package media

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"https://www.youtube.com/watch?v=abc123", "https://www.youtube.com/embed/abc123", false},
		{"http://youtube.com/watch?v=abc123&t=90", "https://www.youtube.com/embed/abc123", false},
		{"https://www.youtube.com/embed/abc123", "https://www.youtube.com/embed/abc123", false},
		{"https://youtu.be/abc123", "https://www.youtube.com/embed/abc123", false},
		{"https://vimeo.com/12345", "https://player.vimeo.com/video/12345", false},
		{"https://player.vimeo.com/video/12345", "https://player.vimeo.com/video/12345", false},
		{"https://cdn.example.com/clips/demo.mp4", "https://cdn.example.com/clips/demo.mp4", false},
		{"https://cdn.example.com/clips/demo.WEBM", "https://cdn.example.com/clips/demo.WEBM", false},
		{"https://www.youtube.com/", "", true},
		{"https://example.com/page.html", "", true},
		{"ftp://example.com/demo.mp4", "", true},
		{"not a url at all %%", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Resolve(%q) = %q, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Resolve(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
