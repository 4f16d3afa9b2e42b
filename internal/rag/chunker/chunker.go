package chunker

import (
	"errors"
	"strings"
)

// Params control the sliding window. Overlap is clamped to Size-1 internally
// so the cursor always moves forward.
type Params struct {
	Size    int
	Overlap int
}

// Window is one emitted chunk. CharStart/CharEnd are offsets into the
// unnormalized page text (CharEnd exclusive); Text is the whitespace-collapsed
// form that gets embedded and stored.
type Window struct {
	Index     int
	Page      int
	RawText   string
	Text      string
	CharStart int
	CharEnd   int
}

var errBadParams = errors.New("chunk size must be >= 1 and overlap >= 0")

// SplitPages walks every page with a fixed-size window and emits the
// non-empty windows in order. The chunk index is global across the whole
// document and continues across page boundaries, so the sequence has no gaps.
// Output is deterministic for identical inputs.
func SplitPages(pages []string, p Params) ([]Window, error) {
	if p.Size < 1 || p.Overlap < 0 {
		return nil, errBadParams
	}

	overlap := p.Overlap
	if overlap >= p.Size {
		overlap = p.Size - 1
	}

	var out []Window
	index := 0

	for pageIdx, page := range pages {
		if len(page) == 0 {
			continue
		}
		pageNum := pageIdx + 1

		cursor := 0
		for cursor < len(page) {
			end := cursor + p.Size
			if end > len(page) {
				end = len(page)
			}

			raw := page[cursor:end]
			normalized := normalize(raw)
			if normalized != "" {
				out = append(out, Window{
					Index:     index,
					Page:      pageNum,
					RawText:   raw,
					Text:      normalized,
					CharStart: cursor,
					CharEnd:   end,
				})
				index++
			}

			if end >= len(page) {
				break
			}
			cursor = end - overlap
			if cursor < 0 {
				cursor = 0
			}
		}
	}

	return out, nil
}

// normalize collapses whitespace runs to single spaces and trims the ends.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
