package coremain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pmkol/midlist/mlog"
)

type replayFlags struct {
	c     string
	watch bool
	out   string
}

type benchFlags struct {
	c      string
	sizes  []int
	ops    int
	seed   int64
	format string
}

var rootCmd = &cobra.Command{
	Use:   "midlist",
	Short: "Tools for the middle-tracked linked list.",
}

func init() {
	rf := new(replayFlags)
	replayCmd := &cobra.Command{
		Use:   "replay [-c config_file] [--watch] [script ...]",
		Short: "Replay operation scripts against a list and check their results.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Replay(cmd.Context(), rf, args, cmd.OutOrStdout())
		},
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
	}
	fs := replayCmd.Flags()
	fs.StringVarP(&rf.c, "config", "c", "", "config file")
	fs.BoolVarP(&rf.watch, "watch", "w", false, "re-run a script every time it changes")
	fs.StringVarP(&rf.out, "format", "f", "text", "report format, text or yaml")
	rootCmd.AddCommand(replayCmd)

	bf := new(benchFlags)
	benchCmd := &cobra.Command{
		Use:   "bench [-c config_file] [--sizes n,n] [--ops n] [--seed n]",
		Short: "Compare traversal hops of the list against a two-anchor list.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Bench(cmd.Context(), bf, cmd.Flags().Changed, cmd.OutOrStdout())
		},
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
	}
	fs = benchCmd.Flags()
	fs.StringVarP(&bf.c, "config", "c", "", "config file")
	fs.IntSliceVar(&bf.sizes, "sizes", nil, "list sizes")
	fs.IntVar(&bf.ops, "ops", 0, "operations per size")
	fs.Int64Var(&bf.seed, "seed", 0, "random seed")
	fs.StringVarP(&bf.format, "format", "f", "text", "output format, text or yaml")
	rootCmd.AddCommand(benchCmd)

	var serveConfig string
	serveCmd := &cobra.Command{
		Use:   "serve [-c config_file]",
		Short: "Run bench rounds continuously and export metrics over http.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(serveConfig, true)
			if err != nil {
				return fmt.Errorf("fail to load config, %w", err)
			}
			return Serve(cmd.Context(), cfg)
		},
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
	}
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "", "config file")
	rootCmd.AddCommand(serveCmd)
}

func AddSubCmd(c *cobra.Command) {
	rootCmd.AddCommand(c)
}

func Run() error {
	return rootCmd.Execute()
}

// loadConfig load a config from a file. If filePath is empty, it will
// automatically search and load a file which name start with "config".
// If required is false, a missing auto-searched file yields a default config.
func loadConfig(filePath string, required bool) (*Config, string, error) {
	v := viper.New()

	if len(filePath) > 0 {
		v.SetConfigFile(filePath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !required && len(filePath) == 0 && errors.As(err, &notFound) {
			return new(Config), "", nil
		}
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := decodeConfig(v)
	if err != nil {
		return nil, "", err
	}

	if err := mergeInclude(cfg, 0, []string{v.ConfigFileUsed()}); err != nil {
		return nil, "", fmt.Errorf("failed to load sub config file, %w", err)
	}
	return cfg, v.ConfigFileUsed(), nil
}

func mergeInclude(cfg *Config, depth int, paths []string) error {
	depth++
	if depth > 8 {
		return fmt.Errorf("maximum include depth reached, include path is %s", strings.Join(paths, " -> "))
	}

	var scripts []string
	for _, subCfgFile := range cfg.Include {
		subPaths := append(paths, subCfgFile)
		mlog.L().Info("reading sub config", zap.String("file", subCfgFile))
		subCfg, err := readConfig(subCfgFile)
		if err != nil {
			return fmt.Errorf("failed to load sub config, %w", err)
		}
		if err := mergeInclude(subCfg, depth, subPaths); err != nil {
			return err
		}
		scripts = append(scripts, subCfg.Scripts...)
	}

	cfg.Scripts = append(scripts, cfg.Scripts...)
	return nil
}

// readConfig is loadConfig without the search and include expansion.
func readConfig(filePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filePath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return decodeConfig(v)
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	decoderOpt := func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
		cfg.TagName = "yaml"
		cfg.WeaklyTypedInput = true
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg, decoderOpt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *Config) (*zap.Logger, error) {
	lg, err := mlog.NewLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return lg, nil
}
