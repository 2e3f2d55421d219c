package bench

import (
	"bytes"
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	res, err := Run(context.Background(), Config{Sizes: []int{512, 8, 64}, Ops: 2000, Seed: 1}, m, nil)
	require.NoError(t, err)
	require.Len(t, res, 3)

	assert.Equal(t, []int{8, 64, 512}, []int{res[0].Size, res[1].Size, res[2].Size})
	for _, r := range res {
		assert.Equal(t, 2000, r.Ops)
		// The list grows by at most one past its start size.
		assert.LessOrEqual(t, r.MidMax, (r.Size+1+3)/4+1, "size %d", r.Size)
		assert.LessOrEqual(t, r.MidMean, r.BaseMean, "size %d", r.Size)
	}
	assert.Less(t, res[2].MidMean, res[2].BaseMean*0.75)

	assert.Equal(t, float64(3*2000), testutil.ToFloat64(m.ops.WithLabelValues(opGet))+
		testutil.ToFloat64(m.ops.WithLabelValues(opInsert))+
		testutil.ToFloat64(m.ops.WithLabelValues(opRemove)))
}

func TestRun_deterministic(t *testing.T) {
	cfg := Config{Sizes: []int{100}, Ops: 500, Seed: 42}
	a, err := Run(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	b, err := Run(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRun_invalidConfig(t *testing.T) {
	_, err := Run(context.Background(), Config{Sizes: []int{0}}, nil, nil)
	assert.Error(t, err)
	_, err = Run(context.Background(), Config{Ops: -1}, nil, nil)
	assert.Error(t, err)
}

func TestRun_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Config{Sizes: []int{10}, Ops: 10}, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWrite(t *testing.T) {
	res := []Result{{Size: 4, Ops: 10, MidMean: 0.5, MidMax: 1, BaseMean: 0.8, BaseMax: 2}}

	buf := new(bytes.Buffer)
	require.NoError(t, WriteText(buf, res))
	assert.Contains(t, buf.String(), "midlist mean")
	assert.Contains(t, buf.String(), "0.50")

	buf.Reset()
	require.NoError(t, WriteYAML(buf, res))
	var got []Result
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, res, got)
}
