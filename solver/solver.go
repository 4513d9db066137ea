// Package solver implements a complete CDCL search on top of the sat engine:
// it decides literals, and on conflict backjumps to the assertion level of
// the learned clause and installs it, until the formula is satisfied or
// refuted.
package solver

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SaswatPadhi/S15-CS264A/sat"
)

// Status is the outcome of a search.
type Status int8

const (
	Unknown Status = iota
	Sat
	Unsat
)

func (s Status) String() string {
	switch s {
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	default:
		return "UNKNOWN"
	}
}

// Options configures the search.
type Options struct {
	// MaxConflicts stops the search after this many conflicts. Negative
	// values disable the limit.
	MaxConflicts int64

	// Timeout stops the search after this duration. Negative values disable
	// the limit.
	Timeout time.Duration
}

var DefaultOptions = Options{
	MaxConflicts: -1,
	Timeout:      -1,
}

type Solver struct {
	state *sat.State
	order *varOrder
	opts  Options
	log   *logrus.Logger

	// Search statistics.
	Decisions int64
	Conflicts int64

	learnedSize ema
	startTime   time.Time
}

// New returns a solver over the given engine state. A nil logger silences
// search reporting.
func New(st *sat.State, opts Options, logger *logrus.Logger) *Solver {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	return &Solver{
		state:       st,
		order:       newVarOrder(st),
		opts:        opts,
		log:         logger,
		learnedSize: ema{decay: 0.99},
	}
}

// State returns the underlying engine state.
func (s *Solver) State() *sat.State {
	return s.state
}

func (s *Solver) shouldStop() bool {
	if s.opts.MaxConflicts >= 0 && s.Conflicts >= s.opts.MaxConflicts {
		return true
	}
	if s.opts.Timeout >= 0 && time.Since(s.startTime) >= s.opts.Timeout {
		return true
	}
	return false
}

// Solve runs the search to completion (or to a stop condition).
func (s *Solver) Solve() Status {
	s.startTime = time.Now()

	if !s.state.UnitResolution() {
		return Unsat
	}

	for {
		if s.shouldStop() {
			return Unknown
		}

		v := s.order.next()
		if v == 0 {
			return Sat
		}

		s.Decisions++
		lit := s.state.Var(v).Neg()
		if s.order.phase[v] {
			lit = s.state.Var(v).Pos()
		}

		learned := s.state.DecideLiteral(lit)
		for learned != nil {
			if learned.Size() == 0 {
				return Unsat
			}

			s.Conflicts++
			s.learnedSize.add(float64(learned.Size()))
			if s.Conflicts%2048 == 0 {
				s.logProgress()
			}
			if s.shouldStop() {
				return Unknown
			}

			for !s.state.AtAssertionLevel(learned) {
				s.state.UndoDecideLiteral()
			}
			learned = s.state.AssertClause(learned)
		}
	}
}

// Model returns the satisfying assignment found by Solve, indexed by variable
// (entry i holds the value of variable i+1). It must only be called after
// Solve returned Sat.
func (s *Solver) Model() []bool {
	model := make([]bool, s.state.VarCount())
	for v := 1; v <= s.state.VarCount(); v++ {
		model[v-1] = s.state.Var(v).Pos().Implied()
	}
	return model
}

func (s *Solver) logProgress() {
	s.log.WithFields(logrus.Fields{
		"decisions":        s.Decisions,
		"conflicts":        s.Conflicts,
		"learned":          s.state.LearnedCount(),
		"learned_size_avg": s.learnedSize.val(),
		"level":            s.state.Level(),
	}).Debug("search progress")
}
