package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/term"

	"github.com/oxysheet/oxysheet-cli/internal/adapters/driven/fitbit"
	"github.com/oxysheet/oxysheet-cli/internal/adapters/driven/sheets"
	storagefile "github.com/oxysheet/oxysheet-cli/internal/adapters/driven/storage/file"
	"github.com/oxysheet/oxysheet-cli/internal/adapters/driving/oauth"
	"github.com/oxysheet/oxysheet-cli/internal/core/domain"
	"github.com/oxysheet/oxysheet-cli/internal/logger"
)

// authTimeout bounds the wait for the browser redirect.
const authTimeout = 5 * time.Minute

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize access to Fitbit and Google Sheets",
	Long: `Run the interactive OAuth flows that produce the stored credentials.

Each flow opens your browser, waits for the redirect on a local listener,
exchanges the authorization code for tokens, and writes them to the state
directory. You normally run each flow once; re-run it if a refresh token is
permanently invalidated.

Examples:
  # Authorize the Google Sheets sink
  oxysheet auth google

  # Authorize the Fitbit data source
  oxysheet auth fitbit

  # Non-interactive client configuration
  oxysheet auth fitbit --client-id "xxx" --client-secret "yyy"`,
}

var authFitbitCmd = &cobra.Command{
	Use:   "fitbit",
	Short: "Authorize the Fitbit data source",
	RunE:  runAuthFitbit,
}

var authGoogleCmd = &cobra.Command{
	Use:   "google",
	Short: "Authorize the Google Sheets sink",
	RunE:  runAuthGoogle,
}

// Flags for auth fitbit.
var (
	authClientID     string
	authClientSecret string
)

func init() {
	authFitbitCmd.Flags().StringVar(
		&authClientID, "client-id", "", "Fitbit OAuth client ID (prompted when omitted)")
	authFitbitCmd.Flags().StringVar(
		&authClientSecret, "client-secret", "", "Fitbit OAuth client secret (prompted when omitted)")

	authCmd.AddCommand(authFitbitCmd)
	authCmd.AddCommand(authGoogleCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthFitbit(cmd *cobra.Command, _ []string) error {
	store, err := openSettings()
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	settings := store.Settings()

	cmd.Println("Fitbit")
	cmd.Println("------")

	clientID, clientSecret, err := collectClientCredentials(cmd)
	if err != nil {
		return err
	}
	creds, err := domain.NewCredentials(clientID, clientSecret)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The redirect URI registered with the Fitbit app is the bare host, so
	// the listener has to run on the registered port.
	token, err := runCodeFlow(ctx, cmd, settings.CallbackPort, func(redirectURI string) *oauth2.Config {
		return fitbit.OAuthConfig(clientID, clientSecret, redirectURI)
	})
	if err != nil {
		return fmt.Errorf("Fitbit authentication failed: %w", err)
	}

	creds.SetTokens(token.AccessToken, token.RefreshToken)
	credsStore := storagefile.NewCredentialsStore(statePath(store, fitbitCredsFile))
	if err := credsStore.Save(ctx, creds); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	cmd.Println("Fitbit authentication successful!")
	return nil
}

func runAuthGoogle(cmd *cobra.Command, _ []string) error {
	store, err := openSettings()
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}

	cmd.Println("Google Sheets")
	cmd.Println("-------------")

	clientPath := statePath(store, googleClientFile)
	if _, err := os.Stat(clientPath); err != nil {
		cmd.Printf("OAuth client file not found at %s.\n", clientPath)
		cmd.Println("Create a project in the Google Cloud Console, enable the Google")
		cmd.Println("Sheets API, and download the OAuth client JSON to that path.")
		cmd.Println("See the project README for instructions.")
		return errors.New("Google client file missing")
	}

	cfg, err := sheets.LoadClientConfig(clientPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Google allows any loopback port; pick a free one.
	port, err := oauth.FindAvailablePort(8080, 8180)
	if err != nil {
		return err
	}
	token, err := runCodeFlow(ctx, cmd, port, func(redirectURI string) *oauth2.Config {
		cfg.RedirectURL = redirectURI
		return cfg
	})
	if err != nil {
		return fmt.Errorf("Google Sheets authentication failed: %w", err)
	}

	if err := sheets.SaveToken(statePath(store, googleTokenFile), token); err != nil {
		return err
	}

	cmd.Println("Google Sheets authentication successful!")
	return nil
}

// runCodeFlow drives one authorization code grant: start a local listener
// on the given port, open the browser, wait for the redirect, exchange the
// code. Cancelling ctx (operator interrupt) aborts the wait cleanly and
// nothing is persisted.
func runCodeFlow(
	ctx context.Context,
	cmd *cobra.Command,
	port int,
	configure func(redirectURI string) *oauth2.Config,
) (*oauth2.Token, error) {
	state := uuid.NewString()
	server := oauth.NewCallbackServer(port, state)
	if err := server.Start(); err != nil {
		return nil, err
	}
	defer server.Stop()

	cfg := configure(server.RedirectURI())
	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)

	cmd.Println("Launching your browser to continue authorization...")
	if err := oauth.OpenBrowser(authURL); err != nil {
		logger.Warn("could not open browser: %v", err)
		cmd.Printf("Open this URL in your browser:\n  %s\n", authURL)
	}

	code, err := server.WaitForCode(ctx, authTimeout)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, errors.New("authorization canceled")
		}
		return nil, err
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	return token, nil
}

// collectClientCredentials resolves the OAuth client ID and secret from
// flags or interactive prompts. The secret prompt does not echo when stdin
// is a terminal.
func collectClientCredentials(cmd *cobra.Command) (string, string, error) {
	reader := bufio.NewReader(cmd.InOrStdin())

	clientID := authClientID
	if clientID == "" {
		cmd.Print("Enter your Fitbit client ID: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("read client ID: %w", err)
		}
		clientID = strings.TrimSpace(line)
	}

	clientSecret := authClientSecret
	if clientSecret == "" {
		cmd.Print("Enter your Fitbit client secret: ")
		if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
			secret, err := term.ReadPassword(fd)
			cmd.Println()
			if err != nil {
				return "", "", fmt.Errorf("read client secret: %w", err)
			}
			clientSecret = strings.TrimSpace(string(secret))
		} else {
			line, err := reader.ReadString('\n')
			if err != nil {
				return "", "", fmt.Errorf("read client secret: %w", err)
			}
			clientSecret = strings.TrimSpace(line)
		}
	}

	return clientID, clientSecret, nil
}
