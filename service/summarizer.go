package service

// Elision markers inserted between the sampled sections of a summarized
// document. Exported via ElisionOverhead so callers can reason about the
// exact output bound.
const (
	middleSectionMarker = "\n\n[...middle section...]\n\n"
	endSectionMarker    = "\n\n[...end section...]\n\n"

	// ElisionOverhead is the fixed number of bytes Summarize adds on top of
	// the maxChars budget when the input does not fit.
	ElisionOverhead = len(middleSectionMarker) + len(endSectionMarker)
)

// Summarize produces a representative excerpt of text that fits within
// maxChars plus ElisionOverhead. Text within budget is returned unchanged.
// Otherwise the budget is split into three equal shares taken from the
// start, the middle (centered on the midpoint) and the end of the text,
// joined with elision markers. Pure and deterministic; safe for any
// non-negative maxChars including 0.
func Summarize(text string, maxChars int) string {
	if maxChars < 0 {
		maxChars = 0
	}
	if len(text) <= maxChars {
		return text
	}

	section := maxChars / 3
	beginning := text[:section]
	middleStart := len(text)/2 - section/2
	middle := text[middleStart : middleStart+section]
	end := text[len(text)-section:]

	return beginning + middleSectionMarker + middle + endSectionMarker + end
}
