package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	singleton "github.com/leangaurav/singleton"
	"github.com/leangaurav/singleton/internal/logging"
	"github.com/leangaurav/singleton/onceflag"
)

type demo struct {
	configPath string
	logLevel   string
	threads    int
	cfg        demoConfig
}

func newRootCmd() *cobra.Command {
	d := &demo{}

	root := &cobra.Command{
		Use:   "singletondemo",
		Short: "Compare the singleton variants.",
		Long: `singletondemo exercises the five singleton variants: unsynchronized ` +
			`lazy, mutex guarded, one-time cell, eager and once-flag.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: d.setup,
	}
	root.PersistentFlags().StringVar(&d.configPath, "config", "", "TOML config file")
	root.PersistentFlags().StringVar(&d.logLevel, "log-level", "", "log level (overrides config)")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the process-wide instance of every variant.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.show(cmd.OutOrStdout())
		},
	}

	race := &cobra.Command{
		Use:   "race",
		Short: "Let several goroutines set and read each configured variant.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.race(cmd.OutOrStdout())
		},
	}
	race.Flags().IntVar(&d.threads, "threads", 0, "number of goroutines (overrides config)")

	policies := &cobra.Command{
		Use:   "policies",
		Short: "List the available policies.",
		Run: func(cmd *cobra.Command, args []string) {
			listPolicies(cmd.OutOrStdout())
		},
	}

	root.AddCommand(show, race, policies)
	return root
}

func (d *demo) setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(d.configPath)
	if err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("threads"); f != nil && f.Changed {
		cfg.Threads = d.threads
	}
	if d.logLevel != "" {
		cfg.LogLevel = d.logLevel
	}
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	d.cfg = cfg

	logging.ConfigureRuntime()
	if lvl, ok := logging.ParseLevel(cfg.LogLevel); ok {
		logging.SetLevel(lvl)
	} else if cfg.LogLevel != "" {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}

	if cfg.ReleaseAtExit {
		onceflag.ReleaseAtExit()
	}
	return nil
}

func (d *demo) show(w io.Writer) error {
	for _, p := range singleton.Policies() {
		prov, err := singleton.Global(p)
		if err != nil {
			return err
		}
		h, release := prov.Acquire()
		fmt.Fprintf(w, "%-9s id=%s data=%q\n", p, h.ID(), h.GetData())
		release()
	}
	return nil
}

func (d *demo) race(w io.Writer) error {
	log := logging.For("singletondemo")

	var out sync.Mutex
	printf := func(format string, args ...any) {
		out.Lock()
		defer out.Unlock()
		fmt.Fprintf(w, format, args...)
	}

	for _, p := range d.cfg.policies() {
		prov, err := singleton.Global(p)
		if err != nil {
			return err
		}
		if !p.ConcurrentSafe() {
			log.Warn().Str("policy", p.String()).Msg("policy is not safe for concurrent use, this run races")
		}

		var wg sync.WaitGroup
		for i := 0; i < d.cfg.Threads; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				data := fmt.Sprintf("Thread %d data", i)

				h, release := prov.Acquire()
				defer release()
				if m, ok := h.(singleton.MutableHandle); ok {
					m.SetData(data)
				}
				printf("Thread %d set %s data: %s\n", i, p, h.GetData())
			}(i)
		}
		wg.Wait()

		h, release := prov.Acquire()
		printf("Final %s data: %s\n", p, h.GetData())
		release()
	}
	return nil
}

func listPolicies(w io.Writer) {
	for _, p := range singleton.Policies() {
		safety := "unsynchronized"
		if p.ConcurrentSafe() {
			safety = "concurrent-safe"
		}
		fmt.Fprintf(w, "%-9s %s\n", p, safety)
	}
}
