// Package cli wires the burnbar demo host into a Cobra command.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/apsidal/burnbar/internal/config"
	"github.com/apsidal/burnbar/internal/overlay"
	"github.com/apsidal/burnbar/internal/shared"
	"github.com/apsidal/burnbar/internal/sim"
	"github.com/apsidal/burnbar/internal/vessel"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root Cobra command for the burnbar demo host.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "burnbar",
		Short:   "Burn timer overlay demo host",
		Long:    "burnbar: a terminal flight HUD demonstrating the burn timer overlay's discovery, cloning, and display hand-off",
		Version: ver,
		RunE:    runDemo,
	}

	cmd.Flags().String("config", "", "path to a burnbar.yaml config file")
	cmd.Flags().Bool("debug", false, "enable debug logging")
	cmd.Flags().Int64("seed", time.Now().UnixNano(), "random seed for the simulated flight")

	return cmd
}

// runDemo builds the session: config, logging, tracker, overlay, facade,
// and the Bubble Tea program, then runs the program until the player quits
// or a signal arrives. Everything, including the telemetry heartbeat, runs
// on the program's update loop; the facade's collaborators are
// single-threaded by contract.
func runDemo(cmd *cobra.Command, _ []string) error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("burnbar is interactive; stdout must be a terminal")
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Logging.Level = "debug"
	}
	if err := config.InitLogger(cfg.Logging); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer config.CloseLogFile()
	logger := config.GetLogger()

	seed, _ := cmd.Flags().GetInt64("seed")
	tracker := vessel.NewTracker(logger)
	model := sim.NewModel(logger, tracker, seed)

	ov := overlay.New(model.Scene(), overlay.Options{
		Cooldown:             cfg.Cooldown(),
		CountdownStyleSource: cfg.Overlay.CountdownStyleSource,
		APIConstraint:        cfg.Host.APIConstraint,
		Logger:               logger,
	})
	shared.Activate(&shared.Instance{Overlay: ov, Tracker: tracker})
	defer shared.Deactivate()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running demo host: %w", err)
	}
	return nil
}
