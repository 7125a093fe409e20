package feeds

import "strings"

// SourcesForLines returns the minimal set of sources whose line sets intersect
// the input, in registry order. An empty input or one that matches nothing
// fails open to the full registry: over-fetching is preferred to showing a
// rider no data.
func (r *Registry) SourcesForLines(lines []string) []Source {
	if len(lines) == 0 {
		return r.All()
	}

	want := make(map[int]struct{})
	for _, line := range lines {
		if i, ok := r.byLine[normalizeLine(line)]; ok {
			want[i] = struct{}{}
		}
	}
	if len(want) == 0 {
		return r.All()
	}

	out := make([]Source, 0, len(want))
	for i, s := range r.sources {
		if _, ok := want[i]; ok {
			out = append(out, s)
		}
	}
	return out
}

// normalizeLine maps express variants ("6X") onto their base line and
// upper-cases lettered lines so lookups are case-insensitive.
func normalizeLine(line string) string {
	line = strings.ToUpper(strings.TrimSpace(line))
	if len(line) > 1 && strings.HasSuffix(line, "X") {
		return line[:len(line)-1]
	}
	return line
}
