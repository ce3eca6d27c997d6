package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/san-kum/blochsim/internal/config"
	"github.com/san-kum/blochsim/internal/deps"
	"github.com/san-kum/blochsim/internal/frames"
	"github.com/san-kum/blochsim/internal/logging"
	"github.com/san-kum/blochsim/internal/media"
	"github.com/san-kum/blochsim/internal/qstate"
	"github.com/san-kum/blochsim/internal/sphere"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aa66"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#dd8800"))
)

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd, args)
	if err != nil {
		return err
	}
	if len(cfg.Pulses) == 0 {
		return fmt.Errorf("no pulses: pass --pulse, --preset or a scene file")
	}

	outFormat, _ := media.ParseFormat(cfg.Output.Format)
	if outFormat == media.FormatMP4 {
		if err := deps.RequireFFmpeg(cfg.Output.FFmpeg); err != nil {
			return err
		}
	}

	log, runID := logging.WithRun(logger)
	log.Info("render started",
		"pulses", len(cfg.Pulses),
		"resolution", cfg.Resolution,
		"format", string(outFormat),
	)

	ctx := cmd.Context()
	start := time.Now()
	result, err := simulate(ctx, cfg, "")
	if err != nil {
		return err
	}

	sp, err := sphere.New(cfg.Sphere)
	if err != nil {
		return err
	}

	frameOpts := media.FrameOptions{
		Dir:         cfg.Output.FramesDir,
		Style:       cfg.Style,
		AlwaysClean: alwaysClean,
		KeepFrames:  cfg.Output.KeepFrames,
		Logger:      log,
	}

	var res *media.AssembleResult
	switch outFormat {
	case media.FormatMP4:
		res, err = media.AssembleVideo(ctx, result.States, sp, media.VideoOptions{
			Filename:     cfg.OutputFilename(),
			FPS:          cfg.Output.FPS,
			Binary:       cfg.Output.FFmpeg,
			FrameOptions: frameOpts,
		})
	case media.FormatFrames:
		res, err = media.SaveFrames(ctx, result.States, sp, frameOpts)
	default:
		res, err = renderGIF(cmd, cfg, result.States, sp, frameOpts)
	}
	if err != nil {
		if res != nil && res.Cleanup == frames.CleanupRetained {
			fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render("frames kept in "+res.Dir))
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("saved"), okStyle.Render(res.Output))
	fmt.Fprintf(out, "%s %d (%d skipped)\n", labelStyle.Render("frames"), res.Frames, len(res.Skipped))
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("cleanup"), res.Cleanup)
	fmt.Fprintf(out, "%s %.3g rad\n", labelStyle.Render("excursion"), result.Metrics["excursion"])
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("run"), runID)
	log.Debug("render finished", "elapsed", time.Since(start))
	return nil
}

func renderGIF(cmd *cobra.Command, cfg *config.Config, states []qstate.State, sp *sphere.Sphere, fo media.FrameOptions) (*media.AssembleResult, error) {
	v, err := media.ParseVariant(cfg.Output.Variant)
	if err != nil {
		return nil, err
	}
	p, err := frames.ParsePolicy(cfg.Output.Policy)
	if err != nil {
		return nil, err
	}
	return media.AssembleGIF(cmd.Context(), states, sp, media.GIFOptions{
		Filename:     cfg.OutputFilename(),
		FrameDelay:   cfg.FrameDelay(),
		Variant:      v,
		Policy:       p,
		FrameOptions: fo,
	})
}
