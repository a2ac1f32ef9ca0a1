package search

import "cmp"

// rule is one step of a tie-break chain. cmp returns a negative number when a
// ranks before b, a positive number when b ranks before a and zero on a tie.
// A rule with a guard only applies when the guard holds for a; earlier rules
// have already made the guarded fields equal on both sides.
type rule[A any] struct {
	name  string
	guard func(a *A) bool
	cmp   func(a, b *A) int
}

// ranking is an ordered tie-break chain. The first rule that tells two
// records apart decides their order.
type ranking[A any] []rule[A]

func (r ranking[A]) compare(a, b *A) int {
	for i := range r {
		if r[i].guard != nil && !r[i].guard(a) {
			continue
		}
		if c := r[i].cmp(a, b); c != 0 {
			return c
		}
	}
	return 0
}

// better reports whether a ranks strictly before b.
func (r ranking[A]) better(a, b *A) bool {
	return r.compare(a, b) < 0
}

// trueFirst ranks records whose flag is set first.
func trueFirst[A any](flag func(*A) bool) func(a, b *A) int {
	return func(a, b *A) int {
		switch fa, fb := flag(a), flag(b); {
		case fa == fb:
			return 0
		case fa:
			return -1
		default:
			return 1
		}
	}
}

func ascending[A any, T cmp.Ordered](value func(*A) T) func(a, b *A) int {
	return func(a, b *A) int {
		return cmp.Compare(value(a), value(b))
	}
}

func descending[A any, T cmp.Ordered](value func(*A) T) func(a, b *A) int {
	return func(a, b *A) int {
		return cmp.Compare(value(b), value(a))
	}
}

// position is an index into an ordered list that may be absent.
type position struct {
	index int
	ok    bool
}

func positionOf(index map[string]int, word string) position {
	i, ok := index[word]
	return position{index: i, ok: ok}
}

// presentFirst ranks a present lower position before a present higher one,
// and any present position before an absent one.
func presentFirst[A any](pos func(*A) position) func(a, b *A) int {
	return func(a, b *A) int {
		pa, pb := pos(a), pos(b)
		switch {
		case pa.ok && pb.ok:
			return cmp.Compare(pa.index, pb.index)
		case pa.ok:
			return -1
		case pb.ok:
			return 1
		default:
			return 0
		}
	}
}
