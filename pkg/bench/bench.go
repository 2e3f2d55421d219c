// Package bench compares the traversal cost of a midlist.List against a
// two-anchor list under the same random workload.
package bench

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"text/tabwriter"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/pmkol/midlist/pkg/list"
	"github.com/pmkol/midlist/pkg/midlist"
)

const (
	opGet    = "get"
	opInsert = "insert"
	opRemove = "remove"
)

type Config struct {
	Sizes []int `yaml:"sizes"`
	Ops   int   `yaml:"ops"`
	Seed  int64 `yaml:"seed"`
}

func (c *Config) init() error {
	if len(c.Sizes) == 0 {
		c.Sizes = []int{16, 256, 4096}
	}
	if c.Ops == 0 {
		c.Ops = 10000
	}
	for _, s := range c.Sizes {
		if s <= 0 {
			return fmt.Errorf("invalid size %d", s)
		}
	}
	if c.Ops < 0 {
		return fmt.Errorf("invalid ops %d", c.Ops)
	}
	return nil
}

type Result struct {
	Size     int     `yaml:"size"`
	Ops      int     `yaml:"ops"`
	MidMean  float64 `yaml:"midlist_mean_hops"`
	MidMax   int     `yaml:"midlist_max_hops"`
	BaseMean float64 `yaml:"two_anchor_mean_hops"`
	BaseMax  int     `yaml:"two_anchor_max_hops"`
}

// Run runs the workload for every configured size in parallel.
// Results are sorted by size.
func Run(ctx context.Context, cfg Config, m *Metrics, lg *zap.Logger) ([]Result, error) {
	if err := cfg.init(); err != nil {
		return nil, err
	}
	if lg == nil {
		lg = zap.NewNop()
	}

	res := make([]Result, len(cfg.Sizes))
	g, ctx := errgroup.WithContext(ctx)
	for i, size := range cfg.Sizes {
		i, size := i, size
		g.Go(func() error {
			r, err := runSize(ctx, size, cfg.Ops, cfg.Seed+int64(i), m)
			if err != nil {
				return fmt.Errorf("size %d: %w", size, err)
			}
			lg.Debug("bench size done",
				zap.Int("size", size),
				zap.Float64("midlist_mean", r.MidMean),
				zap.Float64("two_anchor_mean", r.BaseMean),
			)
			res[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Size < res[j].Size })
	return res, nil
}

type pair struct {
	mid  *midlist.List[int]
	base *list.List[int]
}

func newPair(size int) *pair {
	p := &pair{mid: midlist.New[int](), base: list.New[int]()}
	for i := 0; i < size; i++ {
		_ = p.mid.Add(i)
		p.base.PushBack(list.NewElem(i))
	}
	return p
}

// splicing at either end never walks
func (p *pair) interiorCost(index, n int) int {
	if index <= 0 || index >= n {
		return 0
	}
	c, _ := p.mid.Cost(index)
	return c
}

func (p *pair) get(index int) (mid, base int, err error) {
	mid, _ = p.mid.Cost(index)
	v, err := p.mid.Get(index)
	if err != nil {
		return 0, 0, err
	}
	e, base := p.base.At(index)
	if e.Value != v {
		return 0, 0, fmt.Errorf("lists diverged at %d: %d != %d", index, v, e.Value)
	}
	return mid, base, nil
}

func (p *pair) insert(index, v int) (mid, base int, err error) {
	n := p.mid.Len()
	mid = p.interiorCost(index, n)
	if err := p.mid.Insert(index, v); err != nil {
		return 0, 0, err
	}
	if index == n {
		p.base.PushBack(list.NewElem(v))
		return mid, 0, nil
	}
	mark, base := p.base.At(index)
	p.base.InsertBefore(list.NewElem(v), mark)
	return mid, base, nil
}

func (p *pair) remove(index int) (mid, base int, err error) {
	mid = p.interiorCost(index, p.mid.Len()-1)
	if _, err := p.mid.Remove(index); err != nil {
		return 0, 0, err
	}
	e, base := p.base.At(index)
	p.base.PopElem(e)
	return mid, base, nil
}

func runSize(ctx context.Context, size, ops int, seed int64, m *Metrics) (Result, error) {
	r := rand.New(rand.NewSource(seed))
	p := newPair(size)
	res := Result{Size: size, Ops: ops}

	var midSum, baseSum int
	for i := 0; i < ops; i++ {
		if i&1023 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		var (
			op        string
			mid, base int
			err       error
		)
		// Inserts and removes alternate so the size stays around its start.
		switch n := p.mid.Len(); {
		case r.Intn(2) == 0 && n > 0:
			op = opGet
			mid, base, err = p.get(r.Intn(n))
		case n <= size:
			op = opInsert
			mid, base, err = p.insert(r.Intn(n+1), i)
		default:
			op = opRemove
			mid, base, err = p.remove(r.Intn(n))
		}
		if err != nil {
			return res, err
		}

		m.observe(op, mid, base)
		midSum += mid
		baseSum += base
		res.MidMax = max(res.MidMax, mid)
		res.BaseMax = max(res.BaseMax, base)
	}
	if ops > 0 {
		res.MidMean = float64(midSum) / float64(ops)
		res.BaseMean = float64(baseSum) / float64(ops)
	}
	return res, nil
}

func WriteText(w io.Writer, res []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "size\tops\tmidlist mean\tmidlist max\ttwo-anchor mean\ttwo-anchor max\t")
	for _, r := range res {
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%d\t%.2f\t%d\t\n", r.Size, r.Ops, r.MidMean, r.MidMax, r.BaseMean, r.BaseMax)
	}
	return tw.Flush()
}

func WriteYAML(w io.Writer, res []Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return err
	}
	return enc.Close()
}
