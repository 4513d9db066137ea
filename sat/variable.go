package sat

// Polarity slots of a variable's literal pair.
const (
	neg = 0
	pos = 1
)

// decision records how a variable was instantiated: the level and value of the
// assignment, the clause that forced it (nil for decisions), and the scratch
// fields used by the conflict analyzer. order and dominator are only valid
// while the analyzer that set them is running; clients must not read them.
type decision struct {
	value     bool
	level     int
	order     int
	impliedBy *Clause
	dominator *Var
}

// Var is a CNF variable together with its two owned literals and its decision
// record. A variable is instantiated iff its decision level is positive.
type Var struct {
	id       int
	lits     [2]Lit
	decision decision
	mark     bool
}

func initVar(v *Var, id int) {
	v.id = id
	v.lits[neg] = Lit{id: -id, v: v}
	v.lits[pos] = Lit{id: id, v: v}
}

// Index returns the variable's index in [1, n].
func (v *Var) Index() int {
	return v.id
}

// Pos returns the positive literal of the variable.
func (v *Var) Pos() *Lit {
	return &v.lits[pos]
}

// Neg returns the negative literal of the variable.
func (v *Var) Neg() *Lit {
	return &v.lits[neg]
}

// litOf returns the literal that is true when the variable has the given
// value.
func (v *Var) litOf(value bool) *Lit {
	if value {
		return &v.lits[pos]
	}
	return &v.lits[neg]
}

// Instantiated reports whether the variable has been assigned, either by a
// decision or by unit resolution.
func (v *Var) Instantiated() bool {
	return v.decision.level > 0
}

// Level returns the decision level at which the variable was instantiated, or
// 0 if it is uninstantiated.
func (v *Var) Level() int {
	return v.decision.level
}

// Irrelevant reports whether every original clause mentioning the variable is
// currently subsumed.
func (v *Var) Irrelevant() bool {
	for _, c := range v.lits[pos].appearsIn {
		if !c.Subsumed() {
			return false
		}
	}
	for _, c := range v.lits[neg].appearsIn {
		if !c.Subsumed() {
			return false
		}
	}
	return true
}

// Occurrences returns the number of original clauses mentioning the variable.
func (v *Var) Occurrences() int {
	return len(v.lits[pos].appearsIn) + len(v.lits[neg].appearsIn)
}

// Clause returns the i-th original clause mentioning the variable, counting
// positive appearances before negative ones. i must be in [0, Occurrences()).
func (v *Var) Clause(i int) *Clause {
	if np := len(v.lits[pos].appearsIn); i < np {
		return v.lits[pos].appearsIn[i]
	}
	return v.lits[neg].appearsIn[i-len(v.lits[pos].appearsIn)]
}

// Marked reports the client mark bit. The engine never reads or writes it.
func (v *Var) Marked() bool {
	return v.mark
}

// Mark sets the client mark bit.
func (v *Var) Mark() {
	v.mark = true
}

// Unmark clears the client mark bit.
func (v *Var) Unmark() {
	v.mark = false
}
