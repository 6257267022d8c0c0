package mboxevent

import "testing"

func TestUIDSetString(t *testing.T) {
	tests := []struct {
		name string
		uids []uint32
		want string
	}{
		{"empty", nil, ""},
		{"single", []uint32{5}, "5"},
		{"run", []uint32{1, 2, 3}, "1:3"},
		{"mixed", []uint32{1, 2, 3, 5, 9, 10}, "1:3,5,9:10"},
		{"unordered input", []uint32{10, 9, 5, 3, 2, 1}, "1:3,5,9:10"},
		{"duplicates collapse", []uint32{4, 4, 4}, "4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s UIDSet
			for _, uid := range tt.uids {
				s.Add(uid)
			}
			if got := s.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUIDSetAdd(t *testing.T) {
	var s UIDSet
	if !s.Add(7) {
		t.Error("first Add should report true")
	}
	if s.Add(7) {
		t.Error("duplicate Add should report false")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if s.First() != 7 {
		t.Errorf("First() = %d, want 7", s.First())
	}
}

func TestUIDSetNilLen(t *testing.T) {
	var s *UIDSet
	if s.Len() != 0 {
		t.Error("nil set should have zero length")
	}
}
