package rng

import "github.com/acolita/chance/internal/ports"

// Element selection. The value variants read one element; the Ptr
// variants hand out a pointer into the slice's backing array, so writes
// through it are visible in s. Neither copies the slice.

// Pick returns a uniformly chosen element of s, or false if s is empty.
func Pick[S ~[]E, E any](r ports.Rng, s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}
	return PickUnchecked(r, s), true
}

// TryPick is Pick for fallible sources.
func TryPick[S ~[]E, E any](r ports.TryRng, s S) (E, bool, error) {
	var zero E
	if len(s) == 0 {
		return zero, false, nil
	}
	v, err := TryPickUnchecked(r, s)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// PickUnchecked returns a uniformly chosen element of s. The caller must
// guarantee len(s) > 0.
func PickUnchecked[S ~[]E, E any](r ports.Rng, s S) E {
	return s[InUnchecked(r, 0, len(s))]
}

// TryPickUnchecked is PickUnchecked for fallible sources. The caller must
// guarantee len(s) > 0.
func TryPickUnchecked[S ~[]E, E any](r ports.TryRng, s S) (E, error) {
	i, err := TryInUnchecked(r, 0, len(s))
	if err != nil {
		var zero E
		return zero, err
	}
	return s[i], nil
}

// PickPtr returns a pointer to a uniformly chosen element of s, or nil and
// false if s is empty.
func PickPtr[S ~[]E, E any](r ports.Rng, s S) (*E, bool) {
	if len(s) == 0 {
		return nil, false
	}
	return PickPtrUnchecked(r, s), true
}

// TryPickPtr is PickPtr for fallible sources.
func TryPickPtr[S ~[]E, E any](r ports.TryRng, s S) (*E, bool, error) {
	if len(s) == 0 {
		return nil, false, nil
	}
	p, err := TryPickPtrUnchecked(r, s)
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// PickPtrUnchecked returns a pointer to a uniformly chosen element of s.
// The caller must guarantee len(s) > 0.
func PickPtrUnchecked[S ~[]E, E any](r ports.Rng, s S) *E {
	return &s[InUnchecked(r, 0, len(s))]
}

// TryPickPtrUnchecked is PickPtrUnchecked for fallible sources. The caller
// must guarantee len(s) > 0.
func TryPickPtrUnchecked[S ~[]E, E any](r ports.TryRng, s S) (*E, error) {
	i, err := TryInUnchecked(r, 0, len(s))
	if err != nil {
		return nil, err
	}
	return &s[i], nil
}
