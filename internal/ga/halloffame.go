package ga

// HallOfFame is a bounded, fitness-ordered archive of the best individuals
// seen across the whole run, deduplicated by genome equality. Entries are
// clones, immune to later mutation of the live population. Index 0 is the
// best ever.
type HallOfFame[G any] struct {
	capacity int
	obj      Objective
	clone    func(G) G
	equal    func(a, b G) bool
	entries  []*Individual[G]
}

// NewHallOfFame creates a hall of fame with the given capacity
func NewHallOfFame[G any](capacity int, obj Objective, clone func(G) G, equal func(a, b G) bool) *HallOfFame[G] {
	return &HallOfFame[G]{
		capacity: capacity,
		obj:      obj,
		clone:    clone,
		equal:    equal,
	}
}

// Update inserts any evaluated individual that beats the current worst entry,
// or any individual while capacity is not yet filled. Called after every
// evaluation batch so the best-ever record is always accurate.
func (h *HallOfFame[G]) Update(inds []*Individual[G]) {
	if h.capacity == 0 {
		return
	}
	for _, ind := range inds {
		if !ind.Valid {
			continue
		}
		h.insert(ind)
	}
}

func (h *HallOfFame[G]) insert(ind *Individual[G]) {
	if len(h.entries) == h.capacity {
		worst := h.entries[len(h.entries)-1]
		if !h.obj.Better(ind.Fitness, worst.Fitness) {
			return
		}
	}
	for _, e := range h.entries {
		if h.equal(e.Genome, ind.Genome) {
			return
		}
	}

	entry := &Individual[G]{
		Genome:  h.clone(ind.Genome),
		Fitness: ind.Fitness,
		Valid:   true,
	}

	pos := len(h.entries)
	for i, e := range h.entries {
		if h.obj.Better(entry.Fitness, e.Fitness) {
			pos = i
			break
		}
	}
	h.entries = append(h.entries, nil)
	copy(h.entries[pos+1:], h.entries[pos:])
	h.entries[pos] = entry

	if len(h.entries) > h.capacity {
		h.entries = h.entries[:h.capacity]
	}
}

// Best returns the best-ever individual, or nil if empty
func (h *HallOfFame[G]) Best() *Individual[G] {
	if len(h.entries) == 0 {
		return nil
	}
	return h.entries[0]
}

// Entries returns the archived individuals, best first
func (h *HallOfFame[G]) Entries() []*Individual[G] {
	return h.entries
}

// Len returns the number of archived individuals
func (h *HallOfFame[G]) Len() int {
	return len(h.entries)
}
