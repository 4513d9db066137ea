package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SaswatPadhi/S15-CS264A/parsers"
	"github.com/SaswatPadhi/S15-CS264A/solver"
)

type config struct {
	gzipped      bool
	debug        bool
	cpuProfile   string
	memProfile   string
	maxConflicts int64
	timeout      time.Duration
}

func newRootCmd() *cobra.Command {
	cfg := &config{}

	cmd := &cobra.Command{
		Use:          "satprim <instance.cnf>",
		Short:        "CDCL reasoning engine over DIMACS CNF instances",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg, args[0])
		},
	}

	cmd.Flags().BoolVar(&cfg.gzipped, "gzip", false, "treat the instance as gzip compressed (implied by a .gz extension)")
	cmd.Flags().BoolVar(&cfg.debug, "debug", false, "enable debug logging")
	cmd.Flags().StringVar(&cfg.cpuProfile, "cpuprof", "", "save a pprof CPU profile to the given file")
	cmd.Flags().StringVar(&cfg.memProfile, "memprof", "", "save a pprof memory profile to the given file")
	cmd.Flags().Int64Var(&cfg.maxConflicts, "max-conflicts", -1, "stop after this many conflicts (negative for no limit)")
	cmd.Flags().DurationVar(&cfg.timeout, "timeout", -1, "stop after this duration (negative for no limit)")

	return cmd
}

func run(cfg *config, instance string) error {
	logger := logrus.New()
	if cfg.debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	if cfg.cpuProfile != "" {
		f, err := os.Create(cfg.cpuProfile)
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	gzipped := cfg.gzipped || strings.HasSuffix(instance, ".gz")
	st, err := parsers.LoadDIMACS(instance, gzipped)
	if err != nil {
		return fmt.Errorf("could not load instance: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"variables": st.VarCount(),
		"clauses":   st.ClauseCount(),
	}).Info("instance loaded")

	s := solver.New(st, solver.Options{
		MaxConflicts: cfg.maxConflicts,
		Timeout:      cfg.timeout,
	}, logger)

	start := time.Now()
	status := s.Solve()
	elapsed := time.Since(start)

	logger.WithFields(logrus.Fields{
		"time":      elapsed,
		"decisions": s.Decisions,
		"conflicts": s.Conflicts,
		"learned":   st.LearnedCount(),
	}).Info("search finished")

	switch status {
	case solver.Sat:
		fmt.Println("s SATISFIABLE")
		fmt.Println(modelLine(s.Model()))
	case solver.Unsat:
		fmt.Println("s UNSATISFIABLE")
	default:
		fmt.Println("s UNKNOWN")
	}

	if cfg.memProfile != "" {
		f, err := os.Create(cfg.memProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return err
		}
	}

	return nil
}

func modelLine(model []bool) string {
	sb := strings.Builder{}
	sb.WriteString("v")
	for i, value := range model {
		lit := i + 1
		if !value {
			lit = -lit
		}
		fmt.Fprintf(&sb, " %d", lit)
	}
	sb.WriteString(" 0")
	return sb.String()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
