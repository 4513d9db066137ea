package sat

// The conflict analyzer computes the first unique implication point (1-UIP)
// of a conflict as the immediate dominator of the contradiction in the
// current level's implication graph, then cuts the graph at that point to
// build an asserting clause.

// commonDominator walks the dominator chains of a and b until they meet. The
// chains are rooted at the current level's decision, so the walk terminates.
func commonDominator(a, b *Var) *Var {
	for a != b {
		for a.decision.order < b.decision.order {
			b = b.decision.dominator
		}
		for b.decision.order < a.decision.order {
			a = a.decision.dominator
		}
	}
	return a
}

// computeUIP rebuilds the dominator tree of the current level's implication
// graph and returns the contradiction's immediate dominator. order and
// dominator fields are re-initialized on every call; values left over from
// earlier conflicts are never read.
func (s *State) computeUIP() *Var {
	// Reset the current level's implied suffix. The walk stops at the
	// level's decision, the one entry with no implier.
	i := len(s.trail) - 1
	for s.trail[i].v.decision.impliedBy != nil {
		s.trail[i].v.decision.order = i
		s.trail[i].v.decision.dominator = nil
		i--
	}
	dec := s.trail[i].v
	dec.decision.order = i
	dec.decision.dominator = dec

	// Each implied node's dominator is the common dominator of its
	// predecessors at this level, taken in trail order.
	for _, x := range s.trail[i+1:] {
		d := &x.v.decision
		for _, p := range d.impliedBy.lits {
			if p.v.decision.level != s.level || p == x {
				continue
			}
			if d.dominator == nil {
				d.dominator = p.v
			} else {
				d.dominator = commonDominator(p.v, d.dominator)
			}
		}
		if d.dominator == nil {
			// No predecessor at this level: the node was forced by an
			// asserted clause whose other literals all live at lower levels.
			// Root it at the decision so every chain stays connected.
			d.dominator = dec
		}
	}

	return s.contradiction.decision.dominator
}

// buildAssertingClause builds the 1-UIP clause for the current conflict: the
// negation of the UIP first, followed by the negations of the lower-level
// literals feeding the conflict, in trail order. The clause's assertion
// level is the deepest of those lower levels, or 1 if there are none.
func (s *State) buildAssertingClause() *Clause {
	uip := s.computeUIP()

	// Backward sweep from the contradiction: count and mark the lower-level
	// predecessors of every node dominated by the UIP.
	size := 1
	for i := len(s.trail) - 1; s.trail[i].v != uip; i-- {
		d := s.trail[i].v.decision
		if commonDominator(uip, d.dominator) != uip {
			continue
		}
		for _, p := range d.impliedBy.lits {
			if p.v.decision.level < s.level && !s.marks.has(p.v) {
				s.marks.add(p.v)
				size++
			}
		}
	}

	s.lastLearnedID++
	c := &Clause{
		id:             s.lastLearnedID,
		assertionLevel: 1,
		lits:           make([]*Lit, 0, size),
	}
	c.lits = append(c.lits, uip.litOf(!uip.decision.value))

	// Forward sweep over the lower-level trail prefix: emit the marked
	// literals in assignment order and track the assertion level.
	for _, l := range s.trail {
		if l.v.decision.level >= s.level {
			break
		}
		if !s.marks.has(l.v) {
			continue
		}
		s.marks.remove(l.v)
		c.lits = append(c.lits, l.v.litOf(!l.v.decision.value))
		if lvl := l.v.decision.level; lvl > c.assertionLevel {
			c.assertionLevel = lvl
		}
	}

	return c
}
