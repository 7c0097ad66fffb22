package pipeline

import "github.com/rotisserie/eris"

// ResolutionContext carries the natural-key → surrogate-key maps across
// stages. Each map is written by exactly one stage and treated as immutable
// once published: locations by the location resolver, hosts by the host
// resolver, listings by the listing finalizer. The remappers only read.
type ResolutionContext struct {
	locations map[string]int
	hosts     map[string]int
	listings  map[string]int
}

// locationKey builds the lookup key for a (neighborhood, location) pair.
func locationKey(neighborhood, location string) string {
	return neighborhood + ", " + location
}

// LocationID resolves a (neighborhood, location) pair. A miss after the
// location dimension is finalized is a structural invariant violation, not a
// row-level problem, so it surfaces as an error that aborts the run.
func (rc *ResolutionContext) LocationID(neighborhood, location string) (int, error) {
	id, ok := rc.locations[locationKey(neighborhood, location)]
	if !ok {
		return 0, eris.Errorf("pipeline: location %q not in resolved dimension", locationKey(neighborhood, location))
	}
	return id, nil
}

// HostID resolves a canonical host natural key. Missing keys mean the host
// row was dropped during resolution; callers drop the dependent row.
func (rc *ResolutionContext) HostID(cid string) (int, bool) {
	id, ok := rc.hosts[cid]
	return id, ok
}

// ListingID resolves a canonical listing natural key. Missing keys mean the
// listing was dropped during finalization; dependent fact rows are silently
// discarded.
func (rc *ResolutionContext) ListingID(cid string) (int, bool) {
	id, ok := rc.listings[cid]
	return id, ok
}
