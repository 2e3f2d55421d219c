// Package script replays YAML operation scripts against a midlist.List and
// checks each step's result.
package script

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/Knetic/govaluate"
	"gopkg.in/yaml.v3"

	"github.com/pmkol/midlist/pkg/midlist"
)

const (
	OpAdd    = "add"
	OpInsert = "insert"
	OpRemove = "remove"
	OpGet    = "get"
	OpClear  = "clear"
	OpLen    = "len"
	OpMiddle = "middle"
	OpPrint  = "print"
)

const (
	ErrKindInvalidArgument = "invalid_argument"
	ErrKindIndexOutOfRange = "index_out_of_range"
	ErrKindUnsupported     = "unsupported_operation"
)

type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one operation. A missing or null Value is an absent element.
type Step struct {
	Op string `yaml:"op"`

	// Index is an expression over the variables size and mid,
	// e.g. "size - 1".
	Index string `yaml:"index"`
	Value any    `yaml:"value"`

	Expect    *string `yaml:"expect"`
	ExpectErr string  `yaml:"expect_err"`
}

func Parse(b []byte) (*Script, error) {
	s := new(Script)
	if err := yaml.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}
	return s, s.Validate()
}

func Load(path string) (*Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(s.Name) == 0 {
		s.Name = path
	}
	return s, nil
}

// Validate checks ops and index expressions without running anything.
func (s *Script) Validate() error {
	for i := range s.Steps {
		st := &s.Steps[i]
		switch st.Op {
		case OpInsert, OpRemove, OpGet:
			if len(st.Index) == 0 {
				return fmt.Errorf("step #%d: op %s requires an index", i, st.Op)
			}
			if _, err := govaluate.NewEvaluableExpression(st.Index); err != nil {
				return fmt.Errorf("step #%d: invalid index expression %q, %w", i, st.Index, err)
			}
		case OpAdd, OpClear, OpLen, OpMiddle, OpPrint:
		default:
			return fmt.Errorf("step #%d: unknown op %q", i, st.Op)
		}
		switch st.ExpectErr {
		case "", ErrKindInvalidArgument, ErrKindIndexOutOfRange, ErrKindUnsupported:
		default:
			return fmt.Errorf("step #%d: unknown error kind %q", i, st.ExpectErr)
		}
	}
	return nil
}

// evalIndex evaluates expr with size and mid bound to the current list.
func evalIndex(expr string, size int) (int, error) {
	e, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return 0, err
	}
	params := govaluate.MapParameters{
		"size": float64(size),
		"mid":  float64(midlist.MidIndex(size)),
	}
	res, err := e.Eval(params)
	if err != nil {
		return 0, err
	}
	f, ok := res.(float64)
	if !ok {
		return 0, fmt.Errorf("index expression %q is not numeric, got %T", expr, res)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("index expression %q is not an integer, got %v", expr, f)
	}
	return int(f), nil
}

func errKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, midlist.ErrInvalidArgument):
		return ErrKindInvalidArgument
	case errors.Is(err, midlist.ErrIndexOutOfRange):
		return ErrKindIndexOutOfRange
	case errors.Is(err, midlist.ErrUnsupportedOperation):
		return ErrKindUnsupported
	}
	return err.Error()
}
