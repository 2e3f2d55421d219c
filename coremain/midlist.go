package coremain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/pmkol/midlist/pkg/bench"
	"github.com/pmkol/midlist/pkg/safe_close"
	"github.com/pmkol/midlist/pkg/script"
)

const defaultServeInterval = time.Second * 10

type Midlist struct {
	logger *zap.Logger
	cfg    *Config

	httpAPIMux *http.ServeMux
	metricsReg *prometheus.Registry
	metrics    *bench.Metrics

	sc *safe_close.SafeClose
}

func newMidlist(cfg *Config) (*Midlist, error) {
	lg, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	m := &Midlist{
		logger:     lg,
		cfg:        cfg,
		httpAPIMux: http.NewServeMux(),
		metricsReg: newMetricsReg(),
		sc:         safe_close.NewSafeClose(),
	}
	m.metrics = bench.NewMetrics(m.GetMetricsReg())

	m.httpAPIMux.Handle("/metrics", promhttp.HandlerFor(m.metricsReg, promhttp.HandlerOpts{}))
	m.httpAPIMux.HandleFunc("/debug/pprof/", pprof.Index)
	m.httpAPIMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	m.httpAPIMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	m.httpAPIMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	m.httpAPIMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return m, nil
}

// Serve runs bench rounds every serve.interval and exports their hop
// histograms on api.http until ctx is done or SIGINT/SIGTERM is received.
func Serve(ctx context.Context, cfg *Config) error {
	if len(cfg.API.HTTP) == 0 {
		return errors.New("api.http is not configured")
	}
	m, err := newMidlist(cfg)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return m.run(ctx)
}

func (m *Midlist) run(ctx context.Context) error {
	go func() {
		select {
		case <-ctx.Done():
			m.logger.Info("exiting")
			m.sc.SendCloseSignal(nil)
		case <-m.sc.ReceiveCloseSignal():
		}
	}()

	if httpAddr := m.cfg.API.HTTP; len(httpAddr) > 0 {
		httpServer := &http.Server{
			Addr:    httpAddr,
			Handler: m.httpAPIMux,
		}
		m.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
			defer done()
			errChan := make(chan error, 1)
			go func() {
				m.logger.Info("starting api http server", zap.String("addr", httpAddr))
				errChan <- httpServer.ListenAndServe()
			}()
			select {
			case err := <-errChan:
				m.sc.SendCloseSignal(err)
			case <-closeSignal:
				httpServer.Close()
			}
		})
	}

	m.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		roundCtx, cancel := m.sc.Context()
		defer cancel()

		interval := m.cfg.Serve.Interval
		if interval <= 0 {
			interval = defaultServeInterval
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		cfg := m.cfg.Bench
		for round := 0; ; round++ {
			res, err := bench.Run(roundCtx, cfg, m.metrics, m.logger)
			if err != nil {
				if roundCtx.Err() == nil {
					m.sc.SendCloseSignal(fmt.Errorf("bench round %d, %w", round, err))
				}
				return
			}
			for _, r := range res {
				m.logger.Info("bench round",
					zap.Int("round", round),
					zap.Int("size", r.Size),
					zap.Float64("midlist_mean_hops", r.MidMean),
					zap.Float64("two_anchor_mean_hops", r.BaseMean),
				)
			}
			cfg.Seed++

			select {
			case <-closeSignal:
				return
			case <-ticker.C:
			}
		}
	})

	<-m.sc.ReceiveCloseSignal()
	m.sc.Done()
	m.sc.CloseWait()
	return m.sc.Err()
}

func (m *Midlist) GetSafeClose() *safe_close.SafeClose {
	return m.sc
}

func (m *Midlist) GetMetricsReg() prometheus.Registerer {
	return prometheus.WrapRegistererWithPrefix("midlist_", m.metricsReg)
}

func (m *Midlist) GetHTTPAPIMux() *http.ServeMux {
	return m.httpAPIMux
}

func newMetricsReg() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(collectors.NewGoCollector())
	return reg
}

// Bench runs one bench round and writes the result table to w.
// Flags that were set on the command line override the config file.
func Bench(ctx context.Context, bf *benchFlags, changed func(string) bool, w io.Writer) error {
	cfg, _, err := loadConfig(bf.c, len(bf.c) > 0)
	if err != nil {
		return fmt.Errorf("fail to load config, %w", err)
	}
	lg, err := newLogger(cfg)
	if err != nil {
		return err
	}

	bc := cfg.Bench
	if changed("sizes") {
		bc.Sizes = bf.sizes
	}
	if changed("ops") {
		bc.Ops = bf.ops
	}
	if changed("seed") {
		bc.Seed = bf.seed
	}

	res, err := bench.Run(ctx, bc, nil, lg)
	if err != nil {
		return fmt.Errorf("bench failed, %w", err)
	}
	switch bf.format {
	case "text":
		return bench.WriteText(w, res)
	case "yaml":
		return bench.WriteYAML(w, res)
	default:
		return fmt.Errorf("unknown format %q", bf.format)
	}
}

// Replay runs the scripts named in the config and in args. It fails if any
// step did not meet its expectation.
func Replay(ctx context.Context, rf *replayFlags, args []string, w io.Writer) error {
	cfg, _, err := loadConfig(rf.c, len(rf.c) > 0)
	if err != nil {
		return fmt.Errorf("fail to load config, %w", err)
	}
	lg, err := newLogger(cfg)
	if err != nil {
		return err
	}
	if rf.out != "text" && rf.out != "yaml" {
		return fmt.Errorf("unknown format %q", rf.out)
	}

	files := append(append([]string(nil), cfg.Scripts...), args...)
	if len(files) == 0 {
		return errors.New("no script to replay")
	}

	r := script.NewRunner(lg)
	if rf.watch {
		if len(files) != 1 {
			return fmt.Errorf("--watch takes exactly one script, got %d", len(files))
		}
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return r.Watch(ctx, files[0], func(rep *script.Report, err error) {
			if err != nil {
				lg.Error("replay failed", zap.String("file", files[0]), zap.Error(err))
				return
			}
			if err := writeReport(w, rep, rf.out); err != nil {
				lg.Error("failed to write report", zap.Error(err))
			}
		})
	}

	failed := 0
	for _, f := range files {
		s, err := script.Load(f)
		if err != nil {
			return err
		}
		rep, err := r.Run(s)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		if err := writeReport(w, rep, rf.out); err != nil {
			return err
		}
		failed += rep.Failed
	}
	if failed > 0 {
		return fmt.Errorf("%d step(s) failed", failed)
	}
	return nil
}

func writeReport(w io.Writer, rep *script.Report, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	}

	fmt.Fprintf(w, "%s\n", rep.Name)
	for i, st := range rep.Steps {
		status := "ok"
		if !st.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(w, "  #%-3d %-6s %4d  %-4s %s", i, st.Op, st.Index, status, st.Output)
		if len(st.Err) > 0 {
			fmt.Fprintf(w, " (%s)", st.Err)
		}
		fmt.Fprintln(w)
	}
	_, err := fmt.Fprintf(w, "  final: %s, failed: %d\n", rep.Final, rep.Failed)
	return err
}
