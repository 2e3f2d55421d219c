package script

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/pmkol/midlist/pkg/midlist"
)

type StepResult struct {
	Op     string `yaml:"op"`
	Index  int    `yaml:"index,omitempty"`
	Output string `yaml:"output,omitempty"`
	Err    string `yaml:"err,omitempty"`
	Passed bool   `yaml:"passed"`
}

type Report struct {
	Name   string       `yaml:"name"`
	Steps  []StepResult `yaml:"steps"`
	Final  string       `yaml:"final"`
	Failed int          `yaml:"failed"`
}

type Runner struct {
	logger *zap.Logger
}

func NewRunner(lg *zap.Logger) *Runner {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Runner{logger: lg}
}

// Run replays s against a fresh list. It returns an error only if a step
// cannot be evaluated at all. Failed expectations are counted in the report.
func (r *Runner) Run(s *Script) (*Report, error) {
	l := midlist.New[any]()
	rep := &Report{Name: s.Name}

	for i := range s.Steps {
		st := &s.Steps[i]
		res, err := r.step(l, st)
		if err != nil {
			return nil, fmt.Errorf("step #%d (%s): %w", i, st.Op, err)
		}
		if !res.Passed {
			rep.Failed++
		}
		rep.Steps = append(rep.Steps, res)
		r.logger.Debug(
			"step",
			zap.String("script", s.Name),
			zap.Int("n", i),
			zap.String("op", res.Op),
			zap.Int("index", res.Index),
			zap.String("output", res.Output),
			zap.String("err", res.Err),
			zap.Bool("passed", res.Passed),
			zap.Int("size", l.Len()),
		)
	}
	rep.Final = l.String()
	return rep, nil
}

func (r *Runner) step(l *midlist.List[any], st *Step) (StepResult, error) {
	res := StepResult{Op: st.Op}

	var index int
	if len(st.Index) > 0 {
		var err error
		if index, err = evalIndex(st.Index, l.Len()); err != nil {
			return res, err
		}
		res.Index = index
	}

	var (
		out any
		err error
	)
	switch st.Op {
	case OpAdd:
		if err = l.Add(st.Value); err == nil {
			out = true
		}
	case OpInsert:
		err = l.Insert(index, st.Value)
	case OpRemove:
		out, err = l.Remove(index)
	case OpGet:
		out, err = l.Get(index)
	case OpClear:
		l.Clear()
	case OpLen:
		out = strconv.Itoa(l.Len())
	case OpMiddle:
		if v, ok := l.Middle(); ok {
			out = v
		}
	case OpPrint:
		out = l.String()
	default:
		return res, fmt.Errorf("unknown op %q", st.Op)
	}

	if out != nil {
		res.Output = fmt.Sprint(out)
	}
	res.Err = errKind(err)
	res.Passed = res.Err == st.ExpectErr && (st.Expect == nil || *st.Expect == res.Output)
	return res, nil
}
