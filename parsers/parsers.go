// Package parsers loads DIMACS CNF instances into engine states.
package parsers

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rhartert/dimacs"

	"github.com/SaswatPadhi/S15-CS264A/sat"
)

// LoadDIMACS parses the DIMACS CNF file and returns a fully initialized
// engine state, root-level propagation included.
func LoadDIMACS(filename string, gzipped bool) (*sat.State, error) {
	reader, err := open(filename, gzipped)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %w", filename, err)
	}
	defer reader.Close()

	return Read(reader)
}

// Read parses a DIMACS CNF formula from r and returns the engine state built
// from it.
func Read(r io.Reader) (*sat.State, error) {
	filtered, err := dropTail(r)
	if err != nil {
		return nil, err
	}

	b := &builder{nVars: -1}
	if err := dimacs.ReadBuilder(filtered, b); err != nil {
		return nil, err
	}
	if b.nVars < 0 {
		return nil, fmt.Errorf("no problem line found")
	}

	return sat.NewState(b.nVars, b.clauses)
}

func open(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// dropTail cuts the input at the first '%' line. SATLIB benchmark files end
// with a '%' terminator followed by a stray "0" that would otherwise parse as
// an empty clause.
func dropTail(r io.Reader) (io.Reader, error) {
	sb := strings.Builder{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "%") {
			break
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return strings.NewReader(sb.String()), nil
}

// builder collects the instance on behalf of dimacs.ReadBuilder.
type builder struct {
	nVars   int
	clauses [][]int
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("instances of type %q are not supported", problem)
	}
	b.nVars = nVars
	b.clauses = make([][]int, 0, nClauses)
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	if b.nVars < 0 {
		return fmt.Errorf("clause before problem line")
	}
	clause := make([]int, len(tmpClause))
	copy(clause, tmpClause)
	for _, l := range clause {
		if l == 0 || l > b.nVars || l < -b.nVars {
			return fmt.Errorf("literal %d outside [1, %d]", l, b.nVars)
		}
	}
	b.clauses = append(b.clauses, clause)
	return nil
}

func (b *builder) Comment(_ string) error {
	return nil // ignore comments
}
