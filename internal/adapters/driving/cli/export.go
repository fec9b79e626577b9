package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/oxysheet/oxysheet-cli/internal/adapters/driven/fitbit"
	"github.com/oxysheet/oxysheet-cli/internal/adapters/driven/sheets"
	storagefile "github.com/oxysheet/oxysheet-cli/internal/adapters/driven/storage/file"
	"github.com/oxysheet/oxysheet-cli/internal/core/domain"
	"github.com/oxysheet/oxysheet-cli/internal/core/services"
)

const dateLayout = "2006-01-02"

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Fetch SpO2 data from Fitbit and append it to the sheet",
	Long: `Retrieve blood oxygen (SpO2) measurements for a date range from the
Fitbit Web API and append them as rows (date, min, max, avg) to the
configured Google Sheet.

Both services must have been authorized first ('oxysheet auth google' and
'oxysheet auth fitbit'). The stored Fitbit credentials are rewritten after
every run because access tokens may have been refreshed mid-request.

Examples:
  # Export yesterday's measurement
  oxysheet export --spreadsheet-id 1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms

  # Export a range
  oxysheet export --start 2024-01-01 --end 2024-02-01`,
	RunE: runExport,
}

// Flags for export.
var (
	exportStart       string
	exportEnd         string
	exportSpreadsheet string
	exportWorksheet   string
)

func init() {
	exportCmd.Flags().StringVar(
		&exportStart, "start", "", "Start date, YYYY-MM-DD (default: settings start_date, else yesterday)")
	exportCmd.Flags().StringVar(
		&exportEnd, "end", "", "End date, YYYY-MM-DD (default: yesterday)")
	exportCmd.Flags().StringVar(
		&exportSpreadsheet, "spreadsheet-id", "", "Target spreadsheet ID (default: settings spreadsheet_id)")
	exportCmd.Flags().StringVar(
		&exportWorksheet, "worksheet", "", "Worksheet title (default: settings worksheet)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	store, err := openSettings()
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	settings := store.Settings()

	spreadsheetID := exportSpreadsheet
	if spreadsheetID == "" {
		spreadsheetID = settings.SpreadsheetID
	}
	if spreadsheetID == "" {
		return errors.New("no spreadsheet configured: pass --spreadsheet-id or set spreadsheet_id in " + store.Path())
	}
	worksheet := exportWorksheet
	if worksheet == "" {
		worksheet = settings.Worksheet
	}

	start, end, err := resolveDateRange(exportStart, exportEnd, settings.StartDate, time.Now())
	if err != nil {
		return err
	}

	tokenPath := statePath(store, googleTokenFile)
	if _, err := os.Stat(tokenPath); err != nil {
		return errors.New("Google authorization not found; run 'oxysheet auth google' first")
	}
	credsStore := storagefile.NewCredentialsStore(statePath(store, fitbitCredsFile))
	if !credsStore.Exists() {
		return errors.New("Fitbit credentials not found; run 'oxysheet auth fitbit' first")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := sheets.LoadClientConfig(statePath(store, googleClientFile))
	if err != nil {
		return err
	}
	token, err := sheets.LoadToken(tokenPath)
	if err != nil {
		return err
	}
	svc, err := sheets.NewService(ctx, sheets.NewFileTokenSource(cfg, tokenPath, token))
	if err != nil {
		return fmt.Errorf("create Sheets service: %w", err)
	}

	exporter := services.NewExportService(
		fitbit.NewClient(),
		credsStore,
		sheets.NewWriter(svc, spreadsheetID, worksheet),
	)

	cmd.Printf("Retrieving SpO2 data from Fitbit for %s to %s...\n",
		start.Format(dateLayout), end.Format(dateLayout))
	n, err := exporter.Export(ctx, start, end)
	if err != nil {
		if domain.IsCredentialsError(err) {
			return fmt.Errorf("%w\nRe-run 'oxysheet auth fitbit' to re-authorize", err)
		}
		return err
	}

	cmd.Printf("Added %d SpO2 record(s) to the sheet.\n", n)
	return nil
}

// resolveDateRange turns the flag and settings values into a concrete range.
// The default end is yesterday (SpO2 for the current day is incomplete); the
// default start is the configured start_date, falling back to the end date.
func resolveDateRange(startFlag, endFlag, startSetting string, now time.Time) (time.Time, time.Time, error) {
	yesterday := now.AddDate(0, 0, -1)

	end := yesterday
	if endFlag != "" {
		var err error
		end, err = time.Parse(dateLayout, endFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end date %q: expected YYYY-MM-DD", endFlag)
		}
	}

	startStr := startFlag
	if startStr == "" {
		startStr = startSetting
	}
	start := end
	if startStr != "" {
		var err error
		start, err = time.Parse(dateLayout, startStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", startStr)
		}
	}

	return start, end, nil
}
