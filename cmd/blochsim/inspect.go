package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/blochsim/internal/config"
	"github.com/san-kum/blochsim/internal/deps"
	"github.com/san-kum/blochsim/internal/qstate"
	"github.com/san-kum/blochsim/internal/solver"
	"github.com/san-kum/blochsim/internal/sphere"
)

func runStates(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd, args)
	if err != nil {
		return err
	}
	result, err := simulate(cmd.Context(), cfg, "")
	if err != nil {
		return err
	}

	rows := make([][]string, len(result.States))
	for i, s := range result.States {
		b := s.Bloch()
		rows[i] = []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%.4f", result.Times[i]),
			fmt.Sprintf("%+.4f", b.X),
			fmt.Sprintf("%+.4f", b.Y),
			fmt.Sprintf("%+.4f", b.Z),
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"i", "t", "<σx>", "<σy>", "<σz>"}, rows, 1, 2, 3, 4, 5))
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd, args)
	if err != nil {
		return err
	}
	result, err := simulate(cmd.Context(), cfg, "")
	if err != nil {
		return err
	}
	if len(result.States) == 0 {
		return fmt.Errorf("no data to plot")
	}

	series := [3][]float64{}
	for _, s := range result.States {
		series[0] = append(series[0], qstate.Expect(qstate.SigmaX(), s))
		series[1] = append(series[1], qstate.Expect(qstate.SigmaY(), s))
		series[2] = append(series[2], qstate.Expect(qstate.SigmaZ(), s))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "pulses: %d\n", len(cfg.Pulses))
	fmt.Fprintf(out, "samples: %d\n\n", len(result.States))

	graph := asciigraph.PlotMany(series[:],
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.LowerBound(-1),
		asciigraph.UpperBound(1),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue),
		asciigraph.Caption("<σx> red, <σy> green, <σz> blue vs time"),
	)
	fmt.Fprintln(out, graph)
	return nil
}

// runCompare evolves the scene with each solver and reports the fidelity of
// its final state against the exact propagator.
func runCompare(cmd *cobra.Command, args []string) error {
	var sceneArgs []string
	solvers := solver.Names()
	if len(args) > 0 {
		sceneArgs = args[:1]
		if len(args) > 1 {
			solvers = args[1:]
		}
	}

	cfg, err := loadScene(cmd, sceneArgs)
	if err != nil {
		return err
	}
	if len(cfg.Pulses) == 0 {
		return fmt.Errorf("no pulses to compare")
	}

	ref, err := simulate(cmd.Context(), cfg, "exact")
	if err != nil {
		return err
	}
	final := ref.States[len(ref.States)-1]

	rows := make([][]string, 0, len(solvers))
	for _, name := range solvers {
		start := time.Now()
		result, err := simulate(cmd.Context(), cfg, name)
		elapsed := time.Since(start)
		if err != nil {
			rows = append(rows, []string{name, "error: " + err.Error(), "", "", ""})
			continue
		}
		last := result.States[len(result.States)-1]
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%.12f", qstate.Fidelity(last, final)),
			fmt.Sprintf("%.2e", result.Metrics["norm_drift"]),
			fmt.Sprintf("%.4f", result.Metrics["excursion"]),
			fmt.Sprintf("%.2f", float64(elapsed.Microseconds())/1000),
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "comparing solvers (%d pulses, resolution=%d, duration=%.3g)\n\n",
		len(cfg.Pulses), cfg.Resolution, cfg.Duration)
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"solver", "fidelity", "norm_drift", "excursion", "time_ms"}, rows, 2, 3, 4, 5))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	rows := make([][]string, 0, len(config.Presets))
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		pulses := make([]string, len(p.Pulses))
		for i, pulse := range p.Pulses {
			pulses[i] = pulse.String()
		}
		rows = append(rows, []string{name, p.Init, strings.Join(pulses, " "), p.Description})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"preset", "init", "pulses", "description"}, rows))
	return nil
}

func listThemes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, name := range sphere.ThemeNames() {
		t := sphere.GetTheme(name)
		swatch := func(c lipgloss.Color) string {
			return lipgloss.NewStyle().Background(c).Render("  ")
		}
		label := lipgloss.NewStyle().
			Foreground(t.Vector).
			Background(t.Background).
			Padding(0, 1).
			Render(name)
		fmt.Fprintf(out, "%-12s %s %s %s %s\n", name, label, swatch(t.Frame), swatch(t.Axis), swatch(t.Vector))
	}
	return nil
}

func checkDeps(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, st := range deps.CheckBinaries(deps.Default("")) {
		mark := okStyle.Render("ok")
		detail := st.Path
		if !st.Available {
			mark = warnStyle.Render("missing")
			detail = st.Detail
		}
		fmt.Fprintf(out, "%-8s %-8s %s (%s)\n", st.Name, mark, detail, st.Description)
	}
	return nil
}
