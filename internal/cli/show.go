package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gcgviz/internal/model"
	"gcgviz/internal/service/scoring"
	"gcgviz/internal/service/view"
	"gcgviz/internal/store"
)

func showCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <year>",
		Short: "Print one year's scorecard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}

			v, err := view.NewBuilder(app.Store, app.Logger).Year(cmd.Context(), year)
			if err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "%s %d  %s / %s  %s\n",
				color.New(color.Bold).Sprint("GCG"), v.Year, v.Auditor, v.AssessmentKind, v.Summary)

			tw := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SECTION\tNO\tDESKRIPSI\tBOBOT\tSKOR\tCAPAIAN\tPENJELASAN")
			for _, r := range v.Rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.3f\t%.3f\t%.0f\t%s\n",
					r.Section, r.Number, truncate(r.Description, 48), r.Weight, r.Score, r.Achievement, labelColor(r.Explanation))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if len(v.AspectSummary) > 0 {
				fmt.Fprintln(app.Out)
				printAspects(app.Out, v.AspectSummary)
			}
			return nil
		},
	}
}

func dashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print per-year totals and section achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := view.NewBuilder(app.Store, app.Logger).Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			if len(d.AvailableYears) == 0 {
				fmt.Fprintln(app.Out, "no assessments stored yet")
				return nil
			}

			for _, year := range d.AvailableYears {
				b := d.Years[year]
				fmt.Fprintf(app.Out, "%s  total %.3f  (%s, %s, %d rows)\n",
					color.New(color.FgCyan, color.Bold).Sprint(year), b.TotalScore, b.Auditor, b.AssessmentKind, len(b.Records))
				for _, s := range b.Sections {
					fmt.Fprintf(app.Out, "    %-6s %7.3f / %-7.3f %4.0f%%  %s\n",
						s.Section, s.Score, s.Weight, s.Achievement, labelColor(scoring.Label(s.Score, s.Weight)))
				}
			}
			return nil
		},
	}
}

func historyCmd(app *App) *cobra.Command {
	var year, limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent saves (sqlite backend only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, ok := app.Store.(store.SaveLogReader)
			if !ok {
				return fmt.Errorf("store backend %q does not keep a save log", app.Config.Store.Backend)
			}
			logs, err := reader.ListSaveLogs(cmd.Context(), year, limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SAVED_AT\tYEAR\tMETHOD\tROWS\tTOTAL\tASSESSMENT")
			for _, l := range logs {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%d\t%s\n",
					l.SavedAt.Local().Format("2006-01-02 15:04:05"), l.Year, l.Method, l.YearRows, l.TotalRows, l.AssessmentID)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&year, "year", "y", 0, "only this year")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "max entries")
	return cmd
}

func printAspects(w io.Writer, aspects []model.AspectSummary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ASPEK\tDESKRIPSI\tBOBOT\tSKOR\tCAPAIAN\tPENJELASAN")
	for _, a := range aspects {
		fmt.Fprintf(tw, "%s\t%s\t%.3f\t%.3f\t%.0f\t%s\n",
			a.Section, truncate(a.Description, 48), a.Weight, a.Score, a.Achievement, labelColor(a.Explanation))
	}
	_ = tw.Flush()
}

func labelColor(label string) string {
	switch label {
	case scoring.LabelExcellent, scoring.LabelGood:
		return color.New(color.FgGreen).Sprint(label)
	case scoring.LabelFair:
		return color.New(color.FgYellow).Sprint(label)
	case scoring.LabelPoor, scoring.LabelBad:
		return color.New(color.FgRed).Sprint(label)
	default:
		return label
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
