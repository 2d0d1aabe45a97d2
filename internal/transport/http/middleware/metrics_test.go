package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			"UUID replacement",
			"/api/packages/550e8400-e29b-41d4-a716-446655440000",
			"/api/packages/:id",
		},
		{
			"redirect token replacement",
			"/ABCDEF",
			"/:token",
		},
		{
			"lowercase segment unchanged",
			"/abcdef",
			"/abcdef",
		},
		{
			"short uppercase segment unchanged",
			"/API",
			"/API",
		},
		{
			"root path unchanged",
			"/",
			"/",
		},
		{
			"health endpoint unchanged",
			"/health",
			"/health",
		},
		{
			"api path unchanged",
			"/api/links/quota",
			"/api/links/quota",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizePath(tt.path)
			if got != tt.want {
				t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
