// Package feeds defines the fixed registry of upstream GTFS-RT channels and
// maps subway lines to the feeds that carry them.
package feeds

// Source identifies one upstream real-time channel. The MTA splits the subway
// into per-division feeds; each source lists the lines it carries and the
// path segment appended to the feed base URL.
type Source struct {
	ID    string
	Lines []string
	Path  string
}

// Registry is the fixed set of upstream sources, defined at process start.
type Registry struct {
	sources []Source
	byLine  map[string]int // line -> index into sources
}

// Default returns the registry of the eight NYCT subway feeds.
func Default() *Registry {
	return NewRegistry([]Source{
		{ID: "nyct", Lines: []string{"1", "2", "3", "4", "5", "6", "7", "S", "GS"}, Path: "nyct%2Fgtfs"},
		{ID: "ace", Lines: []string{"A", "C", "E", "H", "FS"}, Path: "nyct%2Fgtfs-ace"},
		{ID: "bdfm", Lines: []string{"B", "D", "F", "M"}, Path: "nyct%2Fgtfs-bdfm"},
		{ID: "g", Lines: []string{"G"}, Path: "nyct%2Fgtfs-g"},
		{ID: "jz", Lines: []string{"J", "Z"}, Path: "nyct%2Fgtfs-jz"},
		{ID: "l", Lines: []string{"L"}, Path: "nyct%2Fgtfs-l"},
		{ID: "nqrw", Lines: []string{"N", "Q", "R", "W"}, Path: "nyct%2Fgtfs-nqrw"},
		{ID: "si", Lines: []string{"SI", "SIR"}, Path: "nyct%2Fgtfs-si"},
	})
}

// NewRegistry builds a registry from an explicit source list. The first source
// claiming a line wins, matching the upstream convention that a line belongs
// to exactly one feed.
func NewRegistry(sources []Source) *Registry {
	byLine := make(map[string]int)
	for i, s := range sources {
		for _, line := range s.Lines {
			if _, ok := byLine[line]; !ok {
				byLine[line] = i
			}
		}
	}
	return &Registry{sources: sources, byLine: byLine}
}

// All returns every source in registry order.
func (r *Registry) All() []Source {
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Lookup returns the source with the given id.
func (r *Registry) Lookup(id string) (Source, bool) {
	for _, s := range r.sources {
		if s.ID == id {
			return s, true
		}
	}
	return Source{}, false
}
