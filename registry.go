package geochem

import "strings"

// Sample identifies one physical sample from the dataset's sample listing.
// The parser treats samples as opaque identities: it only joins them into
// results by name.
type Sample struct {
	Survey   string // title of the survey the sample belongs to
	Station  string
	Earthmat string
	Name     string // unique sample name, referenced by analysis worksheets
}

// SampleRegistry resolves sample names referenced by analysis worksheets.
// Lookups are exact-match and case-sensitive on the trimmed name.
// Implementations must be safe for concurrent readers: worksheets of one
// workbook are validated in parallel.
type SampleRegistry interface {
	LookupByName(name string) (Sample, bool)
}

// StaticRegistry is an immutable, map-backed SampleRegistry. The constructor
// copies the given samples, so a StaticRegistry is trivially safe for
// concurrent lookup.
type StaticRegistry struct {
	byName map[string]Sample
}

// NewStaticRegistry builds a registry from the given samples. Names are
// trimmed; a later sample with the same name replaces an earlier one.
func NewStaticRegistry(samples ...Sample) *StaticRegistry {
	r := &StaticRegistry{byName: make(map[string]Sample, len(samples))}
	for _, s := range samples {
		r.byName[strings.TrimSpace(s.Name)] = s
	}
	return r
}

// LookupByName returns the sample with the given trimmed name.
func (r *StaticRegistry) LookupByName(name string) (Sample, bool) {
	s, ok := r.byName[strings.TrimSpace(name)]
	return s, ok
}

// Len returns the number of registered samples.
func (r *StaticRegistry) Len() int { return len(r.byName) }
