package redraw

import (
	"cmp"
	"math"
	"reflect"
	"slices"
)

// Comparer is implemented by custom priority values that define their own
// ordering. ComparePriority returns a negative, zero or positive result when
// the receiver sorts before, with or after other, and ok=false when the two
// values cannot be ordered.
type Comparer interface {
	ComparePriority(other any) (result int, ok bool)
}

// comparePriorities orders two priority values. Builtin integer, float and
// string kinds (including named types) compare among themselves; integers and
// floats compare with each other. nil, NaN and mixed kinds never compare.
func comparePriorities(a, b any) (int, bool) {
	if c, ok := a.(Comparer); ok {
		return c.ComparePriority(b)
	}
	if c, ok := b.(Comparer); ok {
		r, ok := c.ComparePriority(a)
		return -r, ok
	}
	ka, ok := priorityKeyOf(a)
	if !ok {
		return 0, false
	}
	kb, ok := priorityKeyOf(b)
	if !ok {
		return 0, false
	}
	return ka.compare(kb)
}

type priorityKind uint8

const (
	priorityInt priorityKind = iota
	priorityFloat
	priorityString
)

type priorityKey struct {
	kind priorityKind
	i    int64
	f    float64
	s    string
}

func priorityKeyOf(v any) (priorityKey, bool) {
	if v == nil {
		return priorityKey{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return priorityKey{kind: priorityInt, i: rv.Int()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return priorityKey{kind: priorityFloat, f: float64(u)}, true
		}
		return priorityKey{kind: priorityInt, i: int64(u)}, true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) {
			return priorityKey{}, false
		}
		return priorityKey{kind: priorityFloat, f: f}, true
	case reflect.String:
		return priorityKey{kind: priorityString, s: rv.String()}, true
	}
	return priorityKey{}, false
}

func (k priorityKey) compare(o priorityKey) (int, bool) {
	switch {
	case k.kind == priorityString && o.kind == priorityString:
		return cmp.Compare(k.s, o.s), true
	case k.kind == priorityString || o.kind == priorityString:
		return 0, false
	case k.kind == priorityInt && o.kind == priorityInt:
		return cmp.Compare(k.i, o.i), true
	}
	return cmp.Compare(k.float(), o.float()), true
}

func (k priorityKey) float() float64 {
	if k.kind == priorityInt {
		return float64(k.i)
	}
	return k.f
}

// samePriority reports whether setting b over a changes nothing. Builtin
// numbers and strings are equal by value across types, so 1 and 1.0 match.
// Values of non-comparable types are always treated as a change.
func samePriority(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	_, ca := a.(Comparer)
	_, cb := b.(Comparer)
	if !ca && !cb {
		ka, okA := priorityKeyOf(a)
		kb, okB := priorityKeyOf(b)
		if okA && okB {
			r, ok := ka.compare(kb)
			return ok && r == 0
		}
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// childSet holds a node's children in insertion order together with a
// priority-sorted view. The sorted view is only valid while ordered is true.
type childSet struct {
	members []*Node
	index   map[*Node]struct{}
	sorted  []*Node
	ordered bool
}

func (s *childSet) contains(n *Node) bool {
	_, ok := s.index[n]
	return ok
}

// add inserts n and reports whether the ordered state flipped.
func (s *childSet) add(n *Node) (flipped bool) {
	if s.contains(n) {
		return false
	}
	if s.index == nil {
		s.index = make(map[*Node]struct{})
	}
	s.index[n] = struct{}{}
	s.members = append(s.members, n)
	return s.organise()
}

// remove deletes n and reports whether the ordered state flipped.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (s *childSet) remove(n *Node) (flipped bool) {
	if !s.contains(n) {
		return false
	}
	delete(s.index, n)
	for i, c := range s.members {
		if c == n {
			copy(s.members[i:], s.members[i+1:])
			s.members[len(s.members)-1] = nil
			s.members = s.members[:len(s.members)-1]
			break
		}
	}
	return s.organise()
}

// organise rebuilds the sorted view and reports whether the ordered state
// flipped. A layer is ordered when every member's priority compares with
// every other's; an empty layer is ordered.
func (s *childSet) organise() (flipped bool) {
	was := s.ordered
	s.ordered = s.sort()
	return was != s.ordered
}

func (s *childSet) sort() bool {
	clear(s.sorted)
	s.sorted = append(s.sorted[:0], s.members...)
	if len(s.members) == 0 {
		return true
	}
	first := s.members[0].priority
	for _, m := range s.members {
		if _, ok := comparePriorities(first, m.priority); !ok {
			return false
		}
	}
	failed := false
	slices.SortStableFunc(s.sorted, func(a, b *Node) int {
		c, ok := comparePriorities(a.priority, b.priority)
		if !ok {
			failed = true
		}
		return c
	})
	return !failed
}

// view returns the render order: sorted when ordered, otherwise insertion
// order.
func (s *childSet) view() []*Node {
	if s.ordered {
		return s.sorted
	}
	return s.members
}
