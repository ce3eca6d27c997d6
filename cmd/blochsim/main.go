package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/blochsim/internal/logging"
)

var (
	logLevel  string
	logFormat string
	logger    *slog.Logger

	// scene flags, shared by render, states, plot and compare
	preset     string
	duration   float64
	resolution int
	initName   string
	solverName string
	pulseSpecs []string

	// render flags
	format      string
	outFile     string
	fps         int
	delayMs     int
	variant     string
	policy      string
	theme       string
	size        int
	framesDir   string
	keepFrames  bool
	alwaysClean bool
	color       string
	marker      string
	pointSize   int

	// plot flags
	plotHeight int
	plotWidth  int
)

// main registers the blochsim commands and executes the root command,
// exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "blochsim",
		Short:         "render single-qubit pulse trajectories on the Bloch sphere",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(logging.Options{Level: logLevel, Format: logFormat, Writer: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			logger = l
			slog.SetDefault(l)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "auto", "log format (auto, console, json)")

	renderCmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "render a trajectory to gif, mp4 or frames",
		Long:  "render a trajectory to gif, mp4 or frames. scene is a .yaml/.yml/.toml file or a preset name.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	addSceneFlags(renderCmd)
	renderCmd.Flags().StringVar(&format, "format", "gif", "output format (gif, mp4, frames)")
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default bloch.gif / bloch.mp4)")
	renderCmd.Flags().IntVar(&fps, "fps", 10, "video frame rate")
	renderCmd.Flags().IntVar(&delayMs, "delay", 100, "gif frame delay in ms (frame-preserving variant)")
	renderCmd.Flags().StringVar(&variant, "variant", "lossy", "gif variant (lossy, preserve)")
	renderCmd.Flags().StringVar(&policy, "policy", "skip", "missing frame policy (skip, fail)")
	renderCmd.Flags().StringVar(&theme, "theme", "light", "sphere theme")
	renderCmd.Flags().IntVar(&size, "size", 400, "image size in pixels")
	renderCmd.Flags().StringVar(&framesDir, "frames-dir", "frames", "frame directory")
	renderCmd.Flags().BoolVar(&keepFrames, "keep-frames", false, "keep frames after a successful render")
	renderCmd.Flags().BoolVar(&alwaysClean, "always-clean", false, "remove frames even when assembly fails")
	renderCmd.Flags().StringVar(&color, "color", "b", "point color (b g r c m y k w or #rrggbb)")
	renderCmd.Flags().StringVar(&marker, "marker", "o", "point marker (o s d ^)")
	renderCmd.Flags().IntVar(&pointSize, "point-size", 5, "point marker size")

	statesCmd := &cobra.Command{
		Use:   "states [scene]",
		Short: "print the trajectory as a table of expectation values",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStates,
	}
	addSceneFlags(statesCmd)

	plotCmd := &cobra.Command{
		Use:   "plot [scene]",
		Short: "plot <σx>, <σy>, <σz> against time",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlot,
	}
	addSceneFlags(plotCmd)
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")

	compareCmd := &cobra.Command{
		Use:   "compare [scene] [solvers...]",
		Short: "compare solvers against the exact propagator",
		RunE:  runCompare,
	}
	addSceneFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list pulse presets",
		RunE:  listPresets,
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list sphere themes",
		RunE:  listThemes,
	}

	depsCmd := &cobra.Command{
		Use:   "deps",
		Short: "check external binaries",
		RunE:  checkDeps,
	}

	rootCmd.AddCommand(renderCmd, statesCmd, plotCmd, compareCmd, presetsCmd, themesCmd, depsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use a pulse preset")
	cmd.Flags().Float64Var(&duration, "duration", 1.0, "duration of each pulse")
	cmd.Flags().IntVar(&resolution, "resolution", 20, "samples per pulse")
	cmd.Flags().StringVar(&initName, "init", "0", "initial state (0, 1, +, -, +i, -i)")
	cmd.Flags().StringVar(&solverName, "solver", "exact", "solver (exact, rk4, rk45)")
	cmd.Flags().StringArrayVar(&pulseSpecs, "pulse", nil, "pulse angles x,y,z in radians, pi allowed (repeatable)")
}
