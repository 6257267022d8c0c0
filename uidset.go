package mboxevent

import (
	"sort"
	"strconv"
	"strings"
)

// UIDSet is a sparse ordered set of message UIDs. Sets are owned by exactly
// one Event and are never shared between events.
type UIDSet struct {
	uids []uint32
}

// Add inserts a UID and reports whether it was not already present.
func (s *UIDSet) Add(uid uint32) bool {
	i := sort.Search(len(s.uids), func(i int) bool { return s.uids[i] >= uid })
	if i < len(s.uids) && s.uids[i] == uid {
		return false
	}
	s.uids = append(s.uids, 0)
	copy(s.uids[i+1:], s.uids[i:])
	s.uids[i] = uid
	return true
}

// Len returns the number of UIDs in the set.
func (s *UIDSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.uids)
}

// First returns the lowest UID. Valid only for non-empty sets.
func (s *UIDSet) First() uint32 { return s.uids[0] }

// String renders the canonical compact form: runs of consecutive UIDs
// collapse to "lo:hi", joined by commas ("1:3,5,9:10").
func (s *UIDSet) String() string {
	if s.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(s.uids); {
		j := i
		for j+1 < len(s.uids) && s.uids[j+1] == s.uids[j]+1 {
			j++
		}
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(s.uids[i]), 10))
		if j > i {
			b.WriteByte(':')
			b.WriteString(strconv.FormatUint(uint64(s.uids[j]), 10))
		}
		i = j + 1
	}
	return b.String()
}
