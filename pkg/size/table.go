package size

// Span holds the smallest and largest size among the present values of one
// candidate sequence. OK is false when the sequence has no present value.
type Span struct {
	Min int
	Max int
	OK  bool
}

// Table computes a Span per sequence, in input order.
func Table[T any](seqs [][]T) []Span {
	out := make([]Span, len(seqs))
	for i, seq := range seqs {
		lo, ok := Min(seq)
		if !ok {
			continue
		}
		hi, _ := Max(seq)
		out[i] = Span{Min: lo, Max: hi, OK: true}
	}
	return out
}

// MinTotal is the smallest total size any tuple free of absent values can
// reach. It reports false when some sequence has no present value, meaning no
// such tuple exists.
func MinTotal[T any](seqs [][]T) (int, bool) {
	return total(seqs, func(s Span) int { return s.Min })
}

// MaxTotal is the largest total size any tuple free of absent values can reach.
func MaxTotal[T any](seqs [][]T) (int, bool) {
	return total(seqs, func(s Span) int { return s.Max })
}

func total[T any](seqs [][]T, pick func(Span) int) (int, bool) {
	if len(seqs) == 0 {
		return 0, false
	}
	sum := 0
	for _, span := range Table(seqs) {
		if !span.OK {
			return 0, false
		}
		sum += pick(span)
	}
	return sum, true
}
