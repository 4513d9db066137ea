package sat

import "strings"

// Clause is a disjunction of literals. Original clauses have indices 1..m in
// input order; learned clauses receive strictly larger indices in the order
// they are built.
type Clause struct {
	id             int
	assertionLevel int

	// The clause's literals, in input order. For a learned clause, the first
	// literal is the negated UIP.
	lits []*Lit

	// Watched literals. watchB is nil iff the clause is unit.
	watchA, watchB *Lit

	subsumed bool
	mark     bool
}

// Index returns the clause's index.
func (c *Clause) Index() int {
	return c.id
}

// Literals returns the clause's literals. The slice must not be modified.
func (c *Clause) Literals() []*Lit {
	return c.lits
}

// Size returns the number of literals in the clause.
func (c *Clause) Size() int {
	return len(c.lits)
}

// AssertionLevel returns the level at which the clause must be asserted. It
// is at least 1 for learned clauses; original clauses and the false clause
// sentinel report 0.
func (c *Clause) AssertionLevel() int {
	return c.assertionLevel
}

// Subsumed reports whether the clause is known satisfied at the current
// level.
func (c *Clause) Subsumed() bool {
	return c.subsumed
}

// Marked reports the client mark bit. The engine never reads or writes it.
func (c *Clause) Marked() bool {
	return c.mark
}

// Mark sets the client mark bit.
func (c *Clause) Mark() {
	c.mark = true
}

// Unmark clears the client mark bit.
func (c *Clause) Unmark() {
	c.mark = false
}

func (c *Clause) String() string {
	if len(c.lits) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.lits[0].String())
	for _, l := range c.lits[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
