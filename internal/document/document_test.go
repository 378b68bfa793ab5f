package document

import "testing"

func TestNew(t *testing.T) {
	d := New("hello world", FormatTXT)
	if d.Text != "hello world" {
		t.Errorf("unexpected text %q", d.Text)
	}
	if d.SourceFormat != FormatTXT {
		t.Errorf("unexpected format %q", d.SourceFormat)
	}
	if d.Length != 11 {
		t.Errorf("expected length 11, got %d", d.Length)
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"one two three", 3},
		{"  leading and\ttabs\nand newlines  ", 5},
		{"a\fb", 2},
	}
	for _, tt := range tests {
		d := New(tt.text, FormatTXT)
		if got := d.WordCount(); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
