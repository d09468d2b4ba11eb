package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/freight-audit/internal/assistant"
	"github.com/sells-group/freight-audit/internal/dashboard"
	"github.com/sells-group/freight-audit/internal/model"
	"github.com/sells-group/freight-audit/internal/normalize"
)

var (
	reportDateFrom  string
	reportDateTo    string
	reportBranch    string
	reportConsignee string
	reportMinImpact float64
	reportAll       bool
	reportSummary   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the dashboard model from the latest snapshot",
	Long: `Normalizes the latest stored snapshot, applies the given filters, and
prints the full dashboard model (or the compact assistant summary) as JSON.

Examples:
  freight-audit report
  freight-audit report --branch "Burdwan Depot" --min-impact 500
  freight-audit report --summary`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		snap, err := st.LatestSnapshot(ctx)
		if err != nil {
			return err
		}
		if snap == nil {
			return eris.New("report: no snapshot stored yet, run fetch first")
		}

		mapping, err := loadMapping()
		if err != nil {
			return err
		}
		rows := normalize.Batch(snap.Rows, mapping)

		filters := model.FilterState{
			DateFrom:         reportDateFrom,
			DateTo:           reportDateTo,
			Branch:           reportBranch,
			Consignee:        reportConsignee,
			MinFreightImpact: reportMinImpact,
			OnlyDiversions:   !reportAll,
		}

		d := dashboard.Build(rows, filters, dashboard.Limits{
			Series:    cfg.Dashboard.SeriesLimit,
			Anomalies: cfg.Dashboard.AnomalyLimit,
		})

		zap.L().Info("report built",
			zap.String("snapshot", snap.ID),
			zap.Int("total_rows", d.TotalRows),
			zap.Int("filtered", d.FilteredCount),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if reportSummary {
			return enc.Encode(assistant.Summarize(d, filters, cfg.Dashboard.AssistantTop))
		}
		return enc.Encode(d)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportDateFrom, "date-from", "", "inclusive lower date bound (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportDateTo, "date-to", "", "inclusive upper date bound (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportBranch, "branch", "", "branch name filter")
	reportCmd.Flags().StringVar(&reportConsignee, "consignee", "", "consignee name filter")
	reportCmd.Flags().Float64Var(&reportMinImpact, "min-impact", 0, "minimum absolute freight impact")
	reportCmd.Flags().BoolVar(&reportAll, "all", false, "include non-diversion journeys")
	reportCmd.Flags().BoolVar(&reportSummary, "summary", false, "print the compact assistant summary instead of the full model")
	rootCmd.AddCommand(reportCmd)
}
