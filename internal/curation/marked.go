package curation

// MarkedSet is an ordered set of video ids flagged for export. It is an owned
// value: writers replace it (or a clone of it) wholesale, readers never see a
// half-written set.
type MarkedSet struct {
	order  []string
	member map[string]bool
}

// NewMarkedSet creates an empty marked set.
func NewMarkedSet() MarkedSet {
	return MarkedSet{member: make(map[string]bool)}
}

// Contains reports whether id is marked.
func (m MarkedSet) Contains(id string) bool {
	return m.member[id]
}

// Len returns the number of marked ids.
func (m MarkedSet) Len() int {
	return len(m.order)
}

// IDs returns the marked ids in insertion order. The slice is a copy.
func (m MarkedSet) IDs() []string {
	ids := make([]string, len(m.order))
	copy(ids, m.order)
	return ids
}

// Clone returns an independent copy of the set.
func (m MarkedSet) Clone() MarkedSet {
	clone := MarkedSet{
		order:  make([]string, len(m.order)),
		member: make(map[string]bool, len(m.member)),
	}
	copy(clone.order, m.order)
	for id := range m.member {
		clone.member[id] = true
	}
	return clone
}

// add marks an id. No-op if already marked.
func (m *MarkedSet) add(id string) {
	if m.member[id] {
		return
	}
	if m.member == nil {
		m.member = make(map[string]bool)
	}
	m.member[id] = true
	m.order = append(m.order, id)
}

// remove unmarks an id. No-op if not marked.
func (m *MarkedSet) remove(id string) {
	if !m.member[id] {
		return
	}
	delete(m.member, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// toggle flips membership of an id.
func (m *MarkedSet) toggle(id string) {
	if m.member[id] {
		m.remove(id)
	} else {
		m.add(id)
	}
}
