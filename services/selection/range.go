package selection

import "errors"

var (
	// ErrInteriorRemoval rejects removal of a slot that is neither edge.
	ErrInteriorRemoval = errors.New("only the first or last slot of the sequence may be removed")
	// ErrNotContiguous rejects picks that would leave a gap.
	ErrNotContiguous = errors.New("selection must remain contiguous")
)

// Range is an always-contiguous run of selected hours, inclusive on both
// ends. The zero value is the empty selection. Every mutation goes through
// an edge operation, so a gap is unrepresentable by construction.
type Range struct {
	start  int
	end    int
	active bool
}

// NewRange starts a selection at a single hour.
func NewRange(hour int) Range {
	return Range{start: hour, end: hour, active: true}
}

func (r Range) Empty() bool {
	return !r.active
}

func (r Range) Len() int {
	if !r.active {
		return 0
	}
	return r.end - r.start + 1
}

// Bounds returns the first and last selected hour; ok is false when empty.
func (r Range) Bounds() (first, last int, ok bool) {
	if !r.active {
		return 0, 0, false
	}
	return r.start, r.end, true
}

// Hours lists the selected hours in ascending order.
func (r Range) Hours() []int {
	if !r.active {
		return []int{}
	}
	hours := make([]int, 0, r.Len())
	for h := r.start; h <= r.end; h++ {
		hours = append(hours, h)
	}
	return hours
}

func (r Range) Contains(hour int) bool {
	return r.active && hour >= r.start && hour <= r.end
}

func (r Range) ExtendLeft() Range {
	return Range{start: r.start - 1, end: r.end, active: true}
}

func (r Range) ExtendRight() Range {
	return Range{start: r.start, end: r.end + 1, active: true}
}

func (r Range) ShrinkLeft() Range {
	return Range{start: r.start + 1, end: r.end, active: true}
}

func (r Range) ShrinkRight() Range {
	return Range{start: r.start, end: r.end - 1, active: true}
}

// Pick applies one grid tap to the selection and returns the new selection.
// Picks that match no edge operation are rejected and leave the selection
// unchanged:
//   - an unselected hour must touch the first or last selected hour;
//   - a selected hour may only be removed from an edge, except that
//     re-picking the sole selected hour clears the selection.
func (r Range) Pick(hour int) (Range, error) {
	switch {
	case r.Empty():
		return NewRange(hour), nil
	case hour == r.start-1:
		return r.ExtendLeft(), nil
	case hour == r.end+1:
		return r.ExtendRight(), nil
	case hour == r.start && hour == r.end:
		return Range{}, nil
	case hour == r.start:
		return r.ShrinkLeft(), nil
	case hour == r.end:
		return r.ShrinkRight(), nil
	case r.Contains(hour):
		return r, ErrInteriorRemoval
	default:
		return r, ErrNotContiguous
	}
}
