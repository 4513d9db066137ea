package sat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func literalIndexes(c *Clause) []int {
	ids := make([]int, 0, c.Size())
	for _, l := range c.Literals() {
		ids = append(ids, l.Index())
	}
	return ids
}

// requireAsserting checks the shape invariant of a learned clause: exactly
// one literal at the conflict level, every other literal strictly below it,
// and the assertion level equal to the deepest of those lower levels.
func requireAsserting(t *testing.T, s *State, c *Clause) {
	t.Helper()
	atLevel := 0
	maxLower := 1
	for _, l := range c.Literals() {
		v := l.Var()
		require.True(t, v.Instantiated(), "literal %d", l.Index())
		require.False(t, l.Implied(), "literal %d", l.Index())
		if v.Level() == s.Level() {
			atLevel++
		} else {
			require.Less(t, v.Level(), s.Level(), "literal %d", l.Index())
			if v.Level() > maxLower {
				maxLower = v.Level()
			}
		}
	}
	require.Equal(t, 1, atLevel)
	require.Equal(t, maxLower, c.AssertionLevel())
}

func TestSingleConflictLearning(t *testing.T) {
	s, err := NewState(3, [][]int{{1, 2}, {-1, 2}, {-2, 3}})
	require.NoError(t, err)

	// Deciding ¬3 forces ¬2, and clauses 1 and 2 then clash on variable 1.
	// Every implication path runs through variable 2, the 1-UIP.
	learned := s.DecideLiteral(s.Literal(-3))
	require.NotNil(t, learned)
	requireAsserting(t, s, learned)
	require.Equal(t, []int{2}, literalIndexes(learned))
	require.Equal(t, 1, learned.AssertionLevel())
	require.Greater(t, learned.Index(), s.ClauseCount())

	require.False(t, s.AtAssertionLevel(learned))
	s.UndoDecideLiteral()
	require.True(t, s.AtAssertionLevel(learned))

	require.Nil(t, s.AssertClause(learned))
	require.Equal(t, 1, s.LearnedCount())
	require.True(t, s.Literal(2).Implied())
	require.True(t, s.Literal(3).Implied())
	require.Equal(t, 1, s.Var(2).Level())
	require.Equal(t, 1, s.Var(3).Level())
	require.True(t, learned.Subsumed())
	for c := 1; c <= 3; c++ {
		require.True(t, s.Clause(c).Subsumed(), "clause %d", c)
	}
}

func TestUIPAcrossTwoLevels(t *testing.T) {
	s, err := NewState(4, [][]int{{-1, 2}, {-1, 3}, {-2, -3, 4}, {-4}})
	require.NoError(t, err)

	// Root propagation forces ¬4.
	require.True(t, s.Literal(-4).Implied())
	require.Equal(t, 1, s.Var(4).Level())

	// Deciding 1 implies 2 and 3, and clause 3 then clashes with ¬4. The
	// decision variable is the only UIP; the root-level literal 4 feeds the
	// conflict and stays in the learned clause.
	learned := s.DecideLiteral(s.Literal(1))
	require.NotNil(t, learned)
	requireAsserting(t, s, learned)
	require.Equal(t, []int{-1, 4}, literalIndexes(learned))
	require.Equal(t, 1, learned.AssertionLevel())

	s.UndoDecideLiteral()
	require.True(t, s.AtAssertionLevel(learned))
	require.Nil(t, s.AssertClause(learned))
	require.True(t, s.Literal(-1).Implied())
	require.Equal(t, 1, s.Var(1).Level())
	require.True(t, s.Clause(1).Subsumed())
	require.True(t, s.Clause(2).Subsumed())
}

func TestAssertConflictLoop(t *testing.T) {
	// All eight clauses over three variables: unsatisfiable, but only after
	// learning through repeated assert-time conflicts.
	clauses := [][]int{
		{1, 2, 3}, {1, 2, -3}, {1, -2, 3}, {1, -2, -3},
		{-1, 2, 3}, {-1, 2, -3}, {-1, -2, 3}, {-1, -2, -3},
	}
	s, err := NewState(3, clauses)
	require.NoError(t, err)

	require.Nil(t, s.DecideLiteral(s.Literal(1)))
	learned := s.DecideLiteral(s.Literal(2))
	require.NotNil(t, learned)
	requireAsserting(t, s, learned)

	seen := map[int]bool{}
	for learned != nil {
		require.NotEqual(t, 0, learned.Size(), "sentinel before the root")
		require.False(t, seen[learned.Index()], "clause id %d reused", learned.Index())
		seen[learned.Index()] = true
		require.Greater(t, learned.Index(), s.ClauseCount())

		for !s.AtAssertionLevel(learned) {
			s.UndoDecideLiteral()
		}
		next := s.AssertClause(learned)
		if next != nil && next.Size() == 0 {
			// Root-level contradiction: the formula is unsatisfiable.
			require.Equal(t, 1, s.Level())
			return
		}
		learned = next
	}

	// The first decision sequence was repaired; drive the remaining search
	// by hand until the sentinel shows up.
	for lit := 1; ; lit++ {
		require.LessOrEqual(t, lit, 3, "formula should have been refuted")
		v := s.Var(lit)
		if v.Instantiated() {
			continue
		}
		learned = s.DecideLiteral(v.Pos())
		for learned != nil {
			if learned.Size() == 0 {
				return
			}
			for !s.AtAssertionLevel(learned) {
				s.UndoDecideLiteral()
			}
			learned = s.AssertClause(learned)
		}
	}
}

func TestLearnedIDsMonotone(t *testing.T) {
	s, err := NewState(3, [][]int{{1, 2}, {-1, 2}, {-2, 3}})
	require.NoError(t, err)

	first := s.DecideLiteral(s.Literal(-3))
	require.NotNil(t, first)
	s.UndoDecideLiteral()

	// Rebuilding the same conflict without asserting the first clause must
	// still hand out a fresh, larger ID.
	second := s.DecideLiteral(s.Literal(-3))
	require.NotNil(t, second)
	s.UndoDecideLiteral()
	require.Nil(t, s.AssertClause(first))

	require.Greater(t, first.Index(), s.ClauseCount())
	require.Greater(t, second.Index(), first.Index())
	require.Equal(t, 1, s.LearnedCount())
}
