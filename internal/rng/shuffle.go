package rng

import "github.com/acolita/chance/internal/ports"

// Shuffle permutes s in place.
//
// For each position i in ascending order an index j is drawn from the
// whole range [0, len(s)) and s[i] and s[j] are swapped. This is not the
// textbook Fisher-Yates walk over [i, n), and the resulting permutations are
// not uniformly distributed. Existing callers depend on the exact draw
// sequence, so it must stay this way.
func Shuffle[S ~[]E, E any](r ports.Rng, s S) {
	if err := TryShuffle(Infallible(r), s); err != nil {
		panic(unreachable(err))
	}
}

// TryShuffle is Shuffle for fallible sources. On error s holds whatever
// swaps completed before the failing draw.
func TryShuffle[S ~[]E, E any](r ports.TryRng, s S) error {
	return TryShuffleFunc(r, len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}

// ShuffleFunc applies the same draw sequence as Shuffle to a container of
// length n that is only reachable through swap.
func ShuffleFunc(r ports.Rng, n int, swap func(i, j int)) {
	if err := TryShuffleFunc(Infallible(r), n, swap); err != nil {
		panic(unreachable(err))
	}
}

// TryShuffleFunc is ShuffleFunc for fallible sources.
func TryShuffleFunc(r ports.TryRng, n int, swap func(i, j int)) error {
	for i := 0; i < n; i++ {
		j, err := TryInUnchecked(r, 0, n)
		if err != nil {
			return err
		}
		swap(i, j)
	}
	return nil
}
