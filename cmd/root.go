package cmd

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AnkushinDaniil/kpaths/app"
	"github.com/AnkushinDaniil/kpaths/config"
)

// options carries the per-invocation flag and viper state shared by the
// root command and its subcommands.
type options struct {
	cfgFile string
	v       *viper.Viper
}

func newRootCmd() *cobra.Command {
	o := &options{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:          "kpaths",
		Short:        "Generate k-space sampling paths for a hexagonal lattice",
		Long:         "kpaths writes a zoomed q-space path around K (kpath_zoomed.json) and the closed loop Γ → K → M0 → Γ (kpath.json).",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runGenerate(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&o.cfgFile, "config", "", "config file (toml, yaml or json)")
	pf.StringP("output", "o", config.DefaultOutputDir, "output directory")
	pf.String("mode", config.DefaultMode, "paths to generate: all, zoom or loop")
	pf.String("log-level", config.DefaultLogLevel, "log level")

	_ = o.v.BindPFlag("output_dir", pf.Lookup("output"))
	_ = o.v.BindPFlag("mode", pf.Lookup("mode"))
	_ = o.v.BindPFlag("log_level", pf.Lookup("log-level"))

	rootCmd.AddCommand(newConfigCmd(o))
	return rootCmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig merges defaults, the optional config file, KPATHS_* env vars
// and flags, in increasing precedence.
func (o *options) loadConfig() (config.Config, error) {
	if o.cfgFile != "" {
		o.v.SetConfigFile(o.cfgFile)
		if err := o.v.ReadInConfig(); err != nil {
			return config.Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}
	o.v.SetEnvPrefix("KPATHS")
	o.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	o.v.AutomaticEnv()

	cfg, err := config.Load(o.v)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func (o *options) runGenerate(cmd *cobra.Command) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}
	log.SetLevel(level)

	return app.New(cfg).Run(cmd.Context())
}
