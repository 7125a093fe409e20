package feeds

import "testing"

func sourceIDs(sources []Source) []string {
	ids := make([]string, 0, len(sources))
	for _, s := range sources {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestSourcesForLines(t *testing.T) {
	reg := Default()

	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "single numbered line",
			lines: []string{"6"},
			want:  []string{"nyct"},
		},
		{
			name:  "lines spanning two feeds",
			lines: []string{"1", "L"},
			want:  []string{"nyct", "l"},
		},
		{
			name:  "all lines of one feed collapse to one source",
			lines: []string{"N", "Q", "R", "W"},
			want:  []string{"nqrw"},
		},
		{
			name:  "express variant maps to base feed",
			lines: []string{"6X"},
			want:  []string{"nyct"},
		},
		{
			name:  "lowercase lettered line",
			lines: []string{"a"},
			want:  []string{"ace"},
		},
		{
			name:  "times square spread",
			lines: []string{"1", "2", "3", "7", "N", "Q", "R", "W", "S"},
			want:  []string{"nyct", "nqrw"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sourceIDs(reg.SourcesForLines(tt.lines))
			if len(got) != len(tt.want) {
				t.Fatalf("SourcesForLines(%v) = %v, want %v", tt.lines, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SourcesForLines(%v)[%d] = %s, want %s", tt.lines, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSourcesForLinesFailOpen(t *testing.T) {
	reg := Default()
	full := len(reg.All())

	t.Run("empty input returns full registry", func(t *testing.T) {
		if got := reg.SourcesForLines(nil); len(got) != full {
			t.Errorf("expected all %d sources, got %d", full, len(got))
		}
	})

	t.Run("unknown lines return full registry", func(t *testing.T) {
		if got := reg.SourcesForLines([]string{"X9", "??"}); len(got) != full {
			t.Errorf("expected all %d sources, got %d", full, len(got))
		}
	})
}

func TestRegistryLookup(t *testing.T) {
	reg := Default()

	if _, ok := reg.Lookup("bdfm"); !ok {
		t.Error("expected bdfm source to exist")
	}
	if _, ok := reg.Lookup("metro-north"); ok {
		t.Error("did not expect metro-north source")
	}
}

func TestDefaultRegistryCoversDivisions(t *testing.T) {
	reg := Default()
	if n := len(reg.All()); n != 8 {
		t.Fatalf("expected 8 feed sources, got %d", n)
	}
}
