package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"hwgauge/internal/agent"
	"hwgauge/internal/agent/version"
	"hwgauge/internal/config"
	"hwgauge/internal/metric/gpu"
	"hwgauge/internal/term"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

type flagValues struct {
	configPath  string
	refreshHz   float64
	drive       string
	diskCeiling float64
	width       float64
	height      float64
	fontSize    float64
	logLevel    string
	logJSON     bool
	libvirtURI  string
}

func newRootCmd() *cobra.Command {
	var fv flagValues
	cmd := &cobra.Command{
		Use:           "hwgauge",
		Short:         "Real-time CPU, memory, GPU, network and disk gauges in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, fv)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "load config: %v\n", err)
				return err
			}
			return run(cmd.Context(), cfg, cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&fv.configPath, "config", config.DefaultPath(), "YAML config file")
	f := cmd.Flags()
	f.Float64Var(&fv.refreshHz, "refresh-hz", 10, "target frames per second")
	f.StringVar(&fv.drive, "drive", "", "drive letter (Windows) or mount point to monitor")
	f.Float64Var(&fv.diskCeiling, "disk-ceiling-mbps", 1000, "disk throughput treated as 100%")
	f.Float64Var(&fv.width, "canvas-width", 2400, "initial canvas width")
	f.Float64Var(&fv.height, "canvas-height", 480, "initial canvas height")
	f.Float64Var(&fv.fontSize, "font-size", 32, "label font size in canvas units")
	f.StringVar(&fv.logLevel, "log-level", "info", "debug, info, warn or error")
	f.BoolVar(&fv.logJSON, "log-json", false, "emit JSON log records")
	f.StringVar(&fv.libvirtURI, "libvirt-uri", "", "libvirt URI used as a memory fallback (disabled when empty)")

	cmd.AddCommand(newVersionCmd(&fv))
	return cmd
}

func newVersionCmd(fv *flagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build and GPU capability information as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(fv.configPath)
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			capability := gpu.Detect(cmd.Context(), cfg.GPUQueryTimeout, logger)
			defer capability.Close()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(version.Get(cfg, capability.Vendor()))
		},
	}
}

// loadConfig layers explicitly set flags over file and environment values.
func loadConfig(cmd *cobra.Command, fv flagValues) (config.Config, error) {
	changed := cmd.Flags().Changed
	return config.Load(fv.configPath, func(c *config.Config) {
		if changed("refresh-hz") {
			c.RefreshHz = fv.refreshHz
		}
		if changed("drive") {
			c.Drive = fv.drive
		}
		if changed("disk-ceiling-mbps") {
			c.DiskCeilingMBps = fv.diskCeiling
		}
		if changed("canvas-width") {
			c.CanvasWidth = fv.width
		}
		if changed("canvas-height") {
			c.CanvasHeight = fv.height
		}
		if changed("font-size") {
			c.FontSize = fv.fontSize
		}
		if changed("log-level") {
			c.LogLevel = fv.logLevel
		}
		if changed("log-json") {
			c.LogJSON = fv.logJSON
		}
		if changed("libvirt-uri") {
			c.LibvirtURI = fv.libvirtURI
		}
	})
}

// run owns the terminal for the lifetime of the dashboard. Log output is held
// in memory meanwhile and written to stderr once the terminal is restored.
func run(ctx context.Context, cfg config.Config, stderr io.Writer) error {
	tail := agent.NewTailWriter(agent.DefaultTailSize)
	defer func() { _ = tail.Flush(stderr) }()
	logger := agent.BuildLogger(cfg, tail)

	surface, err := term.Open(term.Options{
		CanvasWidth:  cfg.CanvasWidth,
		CanvasHeight: cfg.CanvasHeight,
		FontSize:     cfg.FontSize,
	}, logger)
	if err != nil {
		logger.Error("surface initialization failed", "error", err)
		return err
	}

	a, err := agent.New(ctx, cfg, logger, surface)
	if err != nil {
		_ = surface.Close()
		logger.Error("agent initialization failed", "error", err)
		return err
	}
	return a.Run(ctx)
}
