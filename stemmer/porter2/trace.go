package porter2

import (
	"context"
	"log/slog"
)

// Exit describes how the pipeline finished
type Exit int

const (
	// ExitNone means every step ran
	ExitNone Exit = iota
	// ExitShort means the tidied word had at most two characters
	ExitShort
	// ExitSpecialCase means a whole-word override matched
	ExitSpecialCase
	// ExitStep1a means the word was a step 1a terminator
	ExitStep1a
)

func (e Exit) String() string {
	switch e {
	case ExitShort:
		return "short"
	case ExitSpecialCase:
		return "special-case"
	case ExitStep1a:
		return "step-1a"
	default:
		return "none"
	}
}

// Stage is the state of the word after one step
type Stage struct {
	Name string
	Word string
	R1   string
	R2   string
}

// Trace records a single stemming run
type Trace struct {
	Input        string
	British      bool
	Tidied       string
	Preprocessed string
	Stages       []Stage
	Exit         Exit
	Result       string
}

// record is a no-op on a nil trace so the hot path pays nothing.
func (t *Trace) record(name, w string) {
	if t == nil {
		return
	}
	t.Stages = append(t.Stages, Stage{Name: name, Word: w, R1: R1(w), R2: R2(w)})
}

func (t *Trace) exit(e Exit) {
	if t == nil {
		return
	}
	t.Exit = e
}

// Log writes the trace to logger at debug level, one record per stage.
func (t Trace) Log(logger *slog.Logger) {
	ctx := context.Background()
	logger.LogAttrs(ctx, slog.LevelDebug, "tidy",
		slog.String("input", t.Input),
		slog.String("word", t.Tidied),
		slog.Bool("british", t.British),
	)
	if t.Exit == ExitShort {
		logger.LogAttrs(ctx, slog.LevelDebug, "exit", slog.String("reason", t.Exit.String()), slog.String("stem", t.Result))
		return
	}
	logger.LogAttrs(ctx, slog.LevelDebug, "preprocess",
		slog.String("word", t.Preprocessed),
		slog.String("r1", R1(t.Preprocessed)),
		slog.String("r2", R2(t.Preprocessed)),
	)
	for _, s := range t.Stages {
		logger.LogAttrs(ctx, slog.LevelDebug, "step "+s.Name,
			slog.String("word", s.Word),
			slog.String("r1", s.R1),
			slog.String("r2", s.R2),
		)
	}
	logger.LogAttrs(ctx, slog.LevelDebug, "exit", slog.String("reason", t.Exit.String()), slog.String("stem", t.Result))
}
