package vision

import (
	"strings"
	"testing"
)

func TestBuildPromptDeterministic(t *testing.T) {
	fragments := []string{"fit, athletic", "professional, successful"}
	first := BuildPrompt(fragments)
	second := BuildPrompt(fragments)
	if first != second {
		t.Fatal("same ordered input must yield byte-identical instructions")
	}
}

func TestBuildPromptJoinsFragments(t *testing.T) {
	got := BuildPrompt([]string{"alpha", "beta", "gamma"})
	if !strings.Contains(got, "qualities: alpha, beta, gamma.") {
		t.Fatalf("fragments not joined into template: %s", got)
	}
	for _, expect := range []string{
		"Maintaining their facial features and identity",
		"Photorealistic and believable",
		"natural lighting",
		"environment that matches their dreams",
	} {
		if !strings.Contains(got, expect) {
			t.Fatalf("instruction missing %q", expect)
		}
	}
}

func TestBuildPromptOrderMatters(t *testing.T) {
	if BuildPrompt([]string{"a", "b"}) == BuildPrompt([]string{"b", "a"}) {
		t.Fatal("fragment order must be preserved")
	}
}
