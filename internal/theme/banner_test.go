package theme

import (
	"strings"
	"testing"
)

func TestBannerResetsColours(t *testing.T) {
	b := Banner()
	if !strings.Contains(b, "MEMESCORE") {
		t.Fatalf("banner missing name: %q", b)
	}
	if strings.Count(b, "\033[0m") != strings.Count(b, "\033[3") {
		t.Fatalf("every colour escape should be reset: %q", b)
	}
}
