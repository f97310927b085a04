package redraw

import "slices"

// TrimRects returns a new slice holding only the rects that are not entirely
// contained within another rect of the input. Identical copies collapse to one.
// Empty rects are dropped. The input slice is not modified.
//
// Rects are visited in descending order of area and each is compared only
// against rects already kept: a rect can only be contained by one at least as
// large, and anything contained by a dropped rect is also contained by the
// rect that dropped it.
func TrimRects(rects []Rect) []Rect {
	if len(rects) == 0 {
		return nil
	}
	byArea := make([]Rect, 0, len(rects))
	for _, r := range rects {
		if !r.Empty() {
			byArea = append(byArea, r)
		}
	}
	slices.SortStableFunc(byArea, func(a, b Rect) int {
		return b.Area() - a.Area()
	})

	kept := make([]Rect, 0, len(byArea))
	for _, r := range byArea {
		contained := false
		for _, k := range kept {
			if k.Contains(r) {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, r)
		}
	}
	return kept
}
