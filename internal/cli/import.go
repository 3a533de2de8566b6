package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gcgviz/internal/importer"
	"gcgviz/internal/service/reconcile"
)

func importCmd(app *App) *cobra.Command {
	var (
		year           int
		assessor       string
		assessmentKind string
		dryRun         bool
	)

	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Extract an aspect summary from a workbook and save it as one year",
		Long: `Reads the first sheet that looks like an aspect summary (3-20 data rows with an
"Aspek" column), then replaces the given year with the extracted aspects.
Use --dry-run to only print what was extracted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			coordinator := importer.NewCoordinator(app.Logger)
			report, err := coordinator.Extract(cmd.Context(), args[0], f)
			if err != nil {
				return err
			}

			for _, s := range report.Sheets {
				mark := color.New(color.FgYellow).Sprint("skip")
				if s.SheetName == report.SourceSheet {
					mark = color.New(color.FgGreen).Sprint("used")
				}
				fmt.Fprintf(app.Out, "  [%s] %-24s rows=%-3d %s\n", mark, s.SheetName, s.RowCount, s.FormatType)
			}
			if report.SourceSheet == "" {
				return fmt.Errorf("no summary sheet found in %s", args[0])
			}
			fmt.Fprintf(app.Out, "extracted %d aspects from %q\n", len(report.AspectSummary), report.SourceSheet)

			if dryRun {
				printAspects(app.Out, report.AspectSummary)
				return nil
			}
			if year <= 0 {
				return fmt.Errorf("--year is required unless --dry-run is set")
			}

			svc := reconcile.NewService(app.Store,
				reconcile.WithLocker(app.WriteLock),
				reconcile.WithLogger(app.Logger),
			)
			res, err := svc.ReconcileYear(cmd.Context(), importer.ToSubmission(report, year, assessor, assessmentKind))
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "%s year %d saved: %d rows (table now %d rows), assessment %s\n",
				color.New(color.FgGreen).Sprint("✓"), res.Year, len(res.YearRecords), res.Persisted, res.AssessmentID)
			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "assessment year to replace")
	cmd.Flags().StringVar(&assessor, "auditor", "", "assessor name")
	cmd.Flags().StringVar(&assessmentKind, "kind", "", "assessment kind (Internal/External)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print extracted data without saving")
	return cmd
}
