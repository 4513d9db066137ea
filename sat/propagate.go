package sat

// assign makes l true at the current level. An uninstantiated variable is
// placed on the trail with the given implier (nil for decisions). If l is
// already true, the implier is subsumed instead. If l is already false, the
// contradiction variable is placed on the trail carrying the conflicting
// clause and assign returns false.
func (s *State) assign(l *Lit, impliedBy *Clause) bool {
	if !l.v.Instantiated() {
		l.v.decision = decision{value: l.id > 0, level: s.level, impliedBy: impliedBy}
		s.trail = append(s.trail, l)
		return true
	}
	if l.Implied() {
		s.subsume(impliedBy)
		return true
	}
	return s.conflict(impliedBy)
}

// conflict records a failed propagation: the synthetic contradiction variable
// joins the trail with the conflicting clause as its implier, which lets the
// analyzer treat the conflict as the trail's last implied node.
func (s *State) conflict(implier *Clause) bool {
	s.contradiction.decision = decision{value: true, level: s.level, impliedBy: implier}
	s.trail = append(s.trail, s.contradiction.Pos())
	return false
}

// replacementWatch scans c for a literal that can take over a watch: the
// first uninstantiated literal that is not already watched. If the scan meets
// a satisfied literal the clause is subsumed and nil is returned; falsified
// literals are skipped.
func (s *State) replacementWatch(c *Clause) *Lit {
	for _, m := range c.lits {
		if m.v.Instantiated() {
			if m.Implied() {
				s.subsume(c)
				return nil
			}
			continue
		}
		if m == c.watchA || m == c.watchB {
			continue
		}
		return m
	}
	return nil
}

// propagateLiteral applies the consequences of l having become true. Clauses
// containing l (original and learned) are subsumed. Every live clause
// watching ¬l then either finds a replacement watch, is found satisfied and
// subsumed, forces its other watched literal, or conflicts.
func (s *State) propagateLiteral(l *Lit) bool {
	for _, c := range l.appearsIn {
		s.subsume(c)
	}
	for e := l.learnedList.Front(); e != nil; e = e.Next() {
		s.subsume(e.Value.(*Clause))
	}

	opp := l.Opposite()
	for e := opp.watchList.Front(); e != nil; {
		next := e.Next()
		c := e.Value.(*Clause)
		if c.subsumed {
			e = next
			continue
		}

		if m := s.replacementWatch(c); m != nil {
			if c.watchA == opp {
				c.watchA = m
			} else {
				c.watchB = m
			}
			opp.watchList.Remove(e)
			m.watchList.PushFront(c)
		} else if !c.subsumed {
			// No replacement: the clause is unit or false under the current
			// assignment.
			other := c.watchB
			if opp == c.watchB {
				other = c.watchA
			}
			if other == nil || other.v.Instantiated() {
				if other != nil && other.Implied() {
					s.subsume(c)
				} else {
					return s.conflict(c)
				}
			} else {
				if !s.assign(other, c) {
					return false
				}
				s.propagateQueue.push(other)
			}
		}
		e = next
	}
	return true
}

// unitResolution drains the propagation queue in FIFO order. On conflict the
// queue is left as is; the caller resets it.
func (s *State) unitResolution() bool {
	for !s.propagateQueue.empty() {
		if !s.propagateLiteral(s.propagateQueue.pop()) {
			return false
		}
	}
	return true
}
