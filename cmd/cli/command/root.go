package command

// root.go defines the root command and the flags every subcommand shares.

import (
	"context"
	"fmt"
	"os"
	"time"

	"moviehub/cmd/cli/authentication"
	"moviehub/cmd/cli/command/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var apiURL string // global flag for the API server URL

var (
	success = color.New(color.FgGreen).SprintFunc()
	heading = color.New(color.Bold).SprintFunc()
	faint   = color.New(color.Faint).SprintFunc()
)

var rootCmd = &cobra.Command{
	Use:   "moviehub",
	Short: "moviehub - command line client for the movie catalog",
	Long: `moviehub talks to a moviehub API server. Use it to:
- browse and filter movies and persons
- rate, like and bookmark
- comment on movies

Use "moviehub [command] --help" to see all options of a command.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	defaultURL := os.Getenv("MOVIEHUB_API")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultURL, "API server URL (env MOVIEHUB_API)")

	rootCmd.AddCommand(authCmd, movieCmd, personCmd, genreCmd, commentCmd, bookmarksCmd)
}

func newClient() *client.HTTPClient {
	return client.NewHTTPClient(apiURL)
}

// authenticatedClient loads the stored tokens, refreshing them first when
// the access token is about to expire.
func authenticatedClient(ctx context.Context) (*client.HTTPClient, error) {
	creds, err := authentication.GetTokens()
	if err != nil {
		return nil, err
	}
	c := newClient()

	if creds.Expired(time.Now()) && creds.RefreshToken != "" {
		pair, err := c.Refresh(ctx, creds.RefreshToken)
		if err != nil {
			return nil, fmt.Errorf("session expired, log in again: %w", err)
		}
		creds.AccessToken, creds.RefreshToken = pair.Access, pair.Refresh
		// the server does not say how long the new token lives
		creds.ExpiresAt = 0
		if err := authentication.StoreTokens(creds); err != nil {
			return nil, err
		}
	}
	c.SetToken(creds.AccessToken)
	return c, nil
}

// optionalClient is authenticated when credentials exist.
func optionalClient(ctx context.Context) *client.HTTPClient {
	if c, err := authenticatedClient(ctx); err == nil {
		return c
	}
	return newClient()
}
