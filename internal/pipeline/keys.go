package pipeline

// Surrogate-key base offsets, one per entity type, keeping the key ranges of
// different entities from colliding. The offsets are empirically chosen and
// preserved as-is; keys are unique only within a single run.
const (
	locationKeyBase = 1
	amenityKeyBase  = 1
	listingKeyBase  = 1000
	hostKeyBase     = 2000
	reviewKeyBase   = 3000
)

// keySeq hands out consecutive surrogate keys starting at a base offset.
// Each pipeline run creates fresh sequences; nothing persists across runs.
type keySeq struct {
	next int
}

func newKeySeq(base int) *keySeq {
	return &keySeq{next: base}
}

// Next returns the next key in the sequence.
func (s *keySeq) Next() int {
	k := s.next
	s.next++
	return k
}
