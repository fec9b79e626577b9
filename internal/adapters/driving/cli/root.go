// Package cli implements the oxysheet command line interface.
package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/oxysheet/oxysheet-cli/internal/adapters/driven/config/file"
	"github.com/oxysheet/oxysheet-cli/internal/logger"
)

// Names of the credential files inside the state directory.
const (
	fitbitCredsFile  = "fitbit_credentials.json"
	googleClientFile = "google_client.json"
	googleTokenFile  = "google_authorized_user.json"
)

var (
	version = "dev"

	// Persistent flags.
	verboseFlag  bool
	stateDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "oxysheet",
	Short: "Export Fitbit SpO2 readings to a Google Sheet",
	Long: `oxysheet retrieves blood oxygen (SpO2) measurements from the Fitbit Web API
and appends them as rows to a Google Sheet.

Run 'oxysheet auth google' and 'oxysheet auth fitbit' once to authorize both
services, then 'oxysheet export' to fetch and append data.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(
		&stateDirFlag, "state-dir", "", "Directory for settings and credentials (default ~/.oxysheet)")
}

// Execute runs the root command with the given build version.
// Errors are returned rather than printed here; main reports them.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}

// openSettings loads the settings store for the configured state directory.
func openSettings() (*configfile.SettingsStore, error) {
	return configfile.NewSettingsStore(stateDirFlag)
}

// statePath returns the path of a file inside the state directory.
func statePath(store *configfile.SettingsStore, name string) string {
	return filepath.Join(store.Dir(), name)
}
