package mboxevent

import "testing"

func TestContentRange(t *testing.T) {
	tests := []struct {
		name       string
		mode       InclusionMode
		trunc      int64
		size       int64
		headerSize int64
		offset     int64
		n          int64
		ok         bool
	}{
		{"standard under threshold", IncludeStandard, 500, 400, 100, 0, 400, true},
		{"standard over threshold excluded", IncludeStandard, 100, 400, 100, 0, 0, false},
		{"standard unlimited", IncludeStandard, 0, 4000, 100, 0, 4000, true},
		{"message truncated", IncludeMessage, 100, 400, 50, 0, 100, true},
		{"message whole", IncludeMessage, 1000, 400, 50, 0, 400, true},
		{"header whole", IncludeHeader, 1000, 400, 120, 0, 120, true},
		{"header truncated", IncludeHeader, 100, 400, 120, 0, 100, true},
		{"body truncated", IncludeBody, 100, 1000, 200, 200, 100, true},
		{"body whole", IncludeBody, 0, 1000, 200, 200, 800, true},
		{"headerbody truncated body", IncludeHeaderBody, 100, 1000, 200, 0, 300, true},
		{"headerbody whole", IncludeHeaderBody, 0, 1000, 200, 0, 1000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, n, ok := contentRange(tt.mode, tt.trunc, tt.size, tt.headerSize)
			if offset != tt.offset || n != tt.n || ok != tt.ok {
				t.Errorf("contentRange() = (%d, %d, %v), want (%d, %d, %v)",
					offset, n, ok, tt.offset, tt.n, tt.ok)
			}
		})
	}
}
