package solver

import (
	"github.com/rhartert/yagh"

	"github.com/SaswatPadhi/S15-CS264A/sat"
)

// varOrder picks decision variables by static occurrence count, preferring
// the polarity the variable shows most often in the original clauses. The
// heap breaks score ties by variable index.
type varOrder struct {
	state *sat.State

	heap  *yagh.IntMap[float64]
	score []float64
	phase []bool
}

func newVarOrder(st *sat.State) *varOrder {
	n := st.VarCount()
	vo := &varOrder{
		state: st,
		heap:  yagh.New[float64](n + 1),
		score: make([]float64, n+1),
		phase: make([]bool, n+1),
	}

	posCount := make([]int, n+1)
	for ci := 1; ci <= st.ClauseCount(); ci++ {
		for _, l := range st.Clause(ci).Literals() {
			vo.score[l.Var().Index()]++
			if l.Index() > 0 {
				posCount[l.Var().Index()]++
			}
		}
	}
	for v := 1; v <= n; v++ {
		vo.phase[v] = 2*posCount[v] >= int(vo.score[v])
		vo.heap.Put(v, -vo.score[v])
	}

	return vo
}

// next returns the next uninstantiated variable to decide, or 0 once every
// variable is instantiated. Variables freed by backjumping re-enter the heap
// lazily, when the heap runs dry.
func (vo *varOrder) next() int {
	for {
		entry, ok := vo.heap.Pop()
		if !ok {
			if !vo.refill() {
				return 0
			}
			continue
		}
		if !vo.state.Var(entry.Elem).Instantiated() {
			return entry.Elem
		}
	}
}

// refill re-inserts every uninstantiated variable that left the heap.
// It reports whether any variable was added.
func (vo *varOrder) refill() bool {
	added := false
	for v := 1; v <= vo.state.VarCount(); v++ {
		if !vo.state.Var(v).Instantiated() && !vo.heap.Contains(v) {
			vo.heap.Put(v, -vo.score[v])
			added = true
		}
	}
	return added
}
