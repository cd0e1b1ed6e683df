package ingest

import "testing"

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "just text", "just text"},
		{"paragraphs", "<p>first</p><p>second</p>", "first second"},
		{"nested", "<div><b>bold</b> and <i>italic</i></div>", "bold and italic"},
		{"script skipped", "<p>keep</p><script>var x = 1;</script>", "keep"},
		{"style skipped", "<style>p { color: red }</style><p>text</p>", "text"},
		{"entities decoded", "<p>fish &amp; chips</p>", "fish & chips"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.in); got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
