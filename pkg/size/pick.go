package size

// Direction selects which extreme PickBySize returns.
type Direction int

const (
	// Longest picks the item with the greatest size.
	Longest Direction = iota
	// Shortest picks the item with the smallest size.
	Shortest
)

// Bound restricts the sizes PickBySize considers. For Longest the limit is an
// inclusive maximum, for Shortest an inclusive minimum.
type Bound struct {
	Limit   int
	enabled bool
}

// Unbounded admits every size.
var Unbounded = Bound{}

// Within returns a Bound with the supplied limit.
func Within(limit int) Bound {
	return Bound{Limit: limit, enabled: true}
}

// Enabled reports whether the bound filters anything.
func (b Bound) Enabled() bool {
	return b.enabled
}

func (b Bound) admits(n int, dir Direction) bool {
	if !b.enabled {
		return true
	}
	if dir == Shortest {
		return n >= b.Limit
	}
	return n <= b.Limit
}

// PickBySize drops absent items and items the bound rejects, then returns the
// first item (in input order) holding the extreme size for dir. fallback is
// returned when nothing survives filtering.
func PickBySize[T any](items []T, dir Direction, fallback T, bound Bound) T {
	best := -1
	bestSize := 0
	for i, item := range items {
		if IsAbsent(item) {
			continue
		}
		n := Of(item)
		if !bound.admits(n, dir) {
			continue
		}
		if best < 0 || (dir == Longest && n > bestSize) || (dir == Shortest && n < bestSize) {
			best = i
			bestSize = n
		}
	}
	if best < 0 {
		return fallback
	}
	return items[best]
}

// PickLongest returns the first longest present item.
func PickLongest[T any](items []T) (T, bool) {
	return pick(items, Longest)
}

// PickShortest returns the first shortest present item.
func PickShortest[T any](items []T) (T, bool) {
	return pick(items, Shortest)
}

func pick[T any](items []T, dir Direction) (T, bool) {
	var zero T
	if !hasPresent(items) {
		return zero, false
	}
	return PickBySize(items, dir, zero, Unbounded), true
}

// Sum adds the sizes of all items. Absent items and a nil list count as 0.
func Sum[T any](items []T) int {
	total := 0
	for _, item := range items {
		total += Of(item)
	}
	return total
}

// Min returns the size of the shortest present item.
func Min[T any](items []T) (int, bool) {
	return extreme(items, Shortest)
}

// Max returns the size of the longest present item.
func Max[T any](items []T) (int, bool) {
	return extreme(items, Longest)
}

func extreme[T any](items []T, dir Direction) (int, bool) {
	found := false
	out := 0
	for _, item := range items {
		if IsAbsent(item) {
			continue
		}
		n := Of(item)
		if !found || (dir == Longest && n > out) || (dir == Shortest && n < out) {
			out = n
			found = true
		}
	}
	return out, found
}

func hasPresent[T any](items []T) bool {
	for _, item := range items {
		if !IsAbsent(item) {
			return true
		}
	}
	return false
}
