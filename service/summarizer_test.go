package service

import (
	"strings"
	"testing"
)

func TestSummarizeIdentity(t *testing.T) {
	text := "a short document body"
	for _, n := range []int{len(text), len(text) + 1, len(text) * 10} {
		if got := Summarize(text, n); got != text {
			t.Fatalf("Summarize(%d) changed text within budget: %q", n, got)
		}
	}
	if got := Summarize("", 0); got != "" {
		t.Fatalf("empty text should pass through, got %q", got)
	}
}

func TestSummarizeBound(t *testing.T) {
	text := strings.Repeat("x", 10000)
	for _, n := range []int{0, 1, 2, 3, 100, 3000, 6000, 9999} {
		got := Summarize(text, n)
		if len(got) > n+ElisionOverhead {
			t.Fatalf("Summarize(%d) produced %d bytes, max %d", n, len(got), n+ElisionOverhead)
		}
	}
}

func TestSummarizeSectionsInOrder(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 2000; i++ {
		b.WriteByte(byte('a' + i%26))
	}
	text := b.String()

	maxChars := 300
	got := Summarize(text, maxChars)

	section := maxChars / 3
	beginning := text[:section]
	middleStart := len(text)/2 - section/2
	middle := text[middleStart : middleStart+section]
	end := text[len(text)-section:]

	begIdx := strings.Index(got, beginning)
	midIdx := strings.Index(got, middle)
	endIdx := strings.LastIndex(got, end)
	if begIdx != 0 {
		t.Fatalf("summary must start with the text prefix")
	}
	if midIdx <= begIdx || endIdx <= midIdx {
		t.Fatalf("sections out of order: beg=%d mid=%d end=%d", begIdx, midIdx, endIdx)
	}
	if !strings.Contains(got, "[...middle section...]") || !strings.Contains(got, "[...end section...]") {
		t.Fatalf("missing elision markers in %q", got)
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	text := strings.Repeat("determinism ", 1000)
	first := Summarize(text, 500)
	for i := 0; i < 5; i++ {
		if got := Summarize(text, 500); got != first {
			t.Fatalf("Summarize is not deterministic")
		}
	}
}

func TestSummarizeDegenerateBudgets(t *testing.T) {
	text := "0123456789abcdef"
	// Must not panic for any of these.
	for _, n := range []int{-1, 0, 1, 2, 3, 15} {
		got := Summarize(text, n)
		if n >= len(text) && got != text {
			t.Fatalf("budget %d should be identity", n)
		}
	}
}
