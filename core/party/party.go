package party

// ID uniquely identifies a participant within a simulation.
// Rosters assign IDs 0..n-1.
type ID int

// IDSlice is an ordered sequence of party IDs. Order is meaningful: a signer
// chain records the forwarding path of a message, so two slices with the same
// members in different orders are not equal.
type IDSlice []ID

// NewIDSlice returns the roster 0..n-1.
func NewIDSlice(n int) IDSlice {
	ids := make(IDSlice, n)
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

func (ids IDSlice) Contains(id ID) bool {
	for _, other := range ids {
		if other == id {
			return true
		}
	}
	return false
}

// Distinct reports whether no ID occurs twice.
func (ids IDSlice) Distinct() bool {
	seen := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}

func (ids IDSlice) Copy() IDSlice {
	out := make(IDSlice, len(ids))
	copy(out, ids)
	return out
}

// Remove returns a copy of ids without id.
func (ids IDSlice) Remove(id ID) IDSlice {
	out := make(IDSlice, 0, len(ids))
	for _, other := range ids {
		if other != id {
			out = append(out, other)
		}
	}
	return out
}

func (ids IDSlice) Equal(other IDSlice) bool {
	if len(ids) != len(other) {
		return false
	}
	for i, id := range ids {
		if other[i] != id {
			return false
		}
	}
	return true
}
