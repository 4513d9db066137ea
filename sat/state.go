package sat

import (
	"container/list"
	"fmt"
	"strings"
)

// State is a stateful CDCL engine over a CNF formula. It supports incremental
// decisions, two-watched-literal unit propagation, 1-UIP clause learning, and
// chronological undo. It is not a solver by itself: a driver supplies the
// search strategy on top of DecideLiteral, AssertClause, and
// UndoDecideLiteral.
//
// A State is not safe for concurrent use.
type State struct {
	level int

	vars    []Var
	clauses []Clause

	// Synthetic sinks for conflict analysis. The contradiction variable is
	// appended to the trail when propagation fails so the analyzer can treat
	// the conflict as one more implied node. The false clause is returned to
	// signal root-level unsatisfiability; it is recognizable by its size and
	// assertion level both being 0.
	contradiction Var
	falseClause   Clause

	// Trail of instantiated literals in assignment order. Level boundaries
	// are implicit: above the root, the first entry of a level's suffix is
	// its decision; the root level holds only implied literals.
	trail []*Lit

	// Literals newly made true whose consequences have not been propagated.
	propagateQueue *queue[*Lit]

	// Learned clauses, newest first. Clauses are appended by AssertClause and
	// kept for the lifetime of the state.
	learned       list.List
	learnedCount  int
	lastLearnedID int

	// Undo journal of subsumed clauses. nil entries are the per-level
	// sentinels pushed by DecideLiteral.
	subsumedLog []*Clause

	marks *markSet

	// Set when root-level propagation finds a contradiction: the formula is
	// unsatisfiable by unit resolution alone. Once set, every conflict path
	// returns the false clause sentinel.
	rootFailed bool
}

// NewState builds an engine over the given formula and computes the root
// closure of its unit clauses. Clauses are slices of signed variable indices;
// indices outside [1, nVars] are rejected. The root level is 1: literals
// forced by unit clauses live there, and the first decision opens level 2.
func NewState(nVars int, clauses [][]int) (*State, error) {
	s := &State{
		level:          1,
		vars:           make([]Var, nVars),
		clauses:        make([]Clause, len(clauses)),
		propagateQueue: newQueue[*Lit](nVars + 1),
		lastLearnedID:  len(clauses),
		marks:          newMarkSet(nVars),
	}
	for i := range s.vars {
		initVar(&s.vars[i], i+1)
	}
	initVar(&s.contradiction, 0)

	// Count appearances first so that each literal's appearance list is
	// allocated exactly once.
	counts := make([]int, 2*nVars+1)
	for ci, ids := range clauses {
		for _, id := range ids {
			if id == 0 || id > nVars || id < -nVars {
				return nil, fmt.Errorf("clause %d: literal %d outside [1, %d]", ci+1, id, nVars)
			}
			counts[id+nVars]++
		}
	}
	for i := range s.vars {
		v := &s.vars[i]
		v.lits[pos].appearsIn = make([]*Clause, 0, counts[v.id+nVars])
		v.lits[neg].appearsIn = make([]*Clause, 0, counts[-v.id+nVars])
	}

	for ci, ids := range clauses {
		c := &s.clauses[ci]
		c.id = ci + 1
		c.lits = make([]*Lit, len(ids))
		for j, id := range ids {
			c.lits[j] = s.Literal(id)
		}
		if len(c.lits) > 0 {
			c.watchA = c.lits[0]
			c.watchA.watchList.PushFront(c)
			if len(c.lits) > 1 {
				c.watchB = c.lits[1]
				c.watchB.watchList.PushFront(c)
			}
		}
	}

	// Fill the appearance lists and assert the unit clauses at the root. An
	// empty clause makes the formula unsatisfiable outright.
	ok := true
	for ci := range s.clauses {
		c := &s.clauses[ci]
		if len(c.lits) == 0 {
			ok = false
			continue
		}
		for _, l := range c.lits {
			l.appearsIn = append(l.appearsIn, c)
		}
		if len(c.lits) == 1 && ok {
			if ok = s.assign(c.lits[0], c); ok {
				s.propagateQueue.push(c.lits[0])
			}
		}
	}
	if ok {
		ok = s.unitResolution()
	}
	if !ok {
		s.failRoot()
	}

	return s, nil
}

// failRoot latches root-level unsatisfiability: the queue is dropped and the
// contradiction entry, if any, is removed from the trail so that accessors
// keep reporting a coherent root state.
func (s *State) failRoot() {
	s.rootFailed = true
	s.propagateQueue.clear()
	if n := len(s.trail); n > 0 && s.trail[n-1].v == &s.contradiction {
		s.trail = s.trail[:n-1]
		s.contradiction.decision.level = 0
	}
}

// VarCount returns the number of variables in the formula.
func (s *State) VarCount() int {
	return len(s.vars)
}

// ClauseCount returns the number of original clauses in the formula.
func (s *State) ClauseCount() int {
	return len(s.clauses)
}

// LearnedCount returns the number of clauses asserted so far.
func (s *State) LearnedCount() int {
	return s.learnedCount
}

// Level returns the current decision level. The root level is 1.
func (s *State) Level() int {
	return s.level
}

// Var returns the variable with index i in [1, VarCount()].
func (s *State) Var(i int) *Var {
	return &s.vars[i-1]
}

// Literal returns the literal with the given signed index.
func (s *State) Literal(i int) *Lit {
	v := &s.vars[abs(i)-1]
	if i > 0 {
		return &v.lits[pos]
	}
	return &v.lits[neg]
}

// Clause returns the original clause with index i in [1, ClauseCount()].
func (s *State) Clause(i int) *Clause {
	return &s.clauses[i-1]
}

// subsume records c as satisfied at the current level. It is idempotent; the
// clause is revived when the level is undone.
func (s *State) subsume(c *Clause) {
	if c == nil || c.subsumed {
		return
	}
	c.subsumed = true
	s.subsumedLog = append(s.subsumedLog, c)
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

func (s *State) String() string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "State(%d vars, %d clauses) @ %d [", len(s.vars), len(s.clauses), s.level)
	for i, l := range s.trail {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
