package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/redmonkez12/offiswap/cmd/offiswap/ui"
	"github.com/redmonkez12/offiswap/internal/client"
)

const defaultAPI = "http://localhost:5001"

// options are the persistent flags shared by every subcommand
type options struct {
	apiURL  string
	token   string
	jsonOut bool
	now     func() time.Time
}

func newRootCmd() *cobra.Command {
	opts := &options{now: time.Now}

	rootCmd := &cobra.Command{
		Use:           "offiswap",
		Short:         "Command-line client for the OffiSwap API",
		Long:          "Register, log in and manage surplus office item listings on an OffiSwap server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api", envOr("OFFISWAP_API", defaultAPI), "API base URL (env OFFISWAP_API)")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("OFFISWAP_TOKEN"), "token from `offiswap login` (env OFFISWAP_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print raw JSON")

	rootCmd.AddCommand(
		newRegisterCmd(opts),
		newLoginCmd(opts),
		newListingsCmd(opts),
	)

	return rootCmd
}

func (o *options) client() *client.Client {
	return client.New(o.apiURL)
}

// requireToken returns the configured token, warning when it has
// visibly expired. The server's answer stays authoritative.
func (o *options) requireToken(cmd *cobra.Command) (string, error) {
	if o.token == "" {
		return "", fmt.Errorf("no token: run `offiswap login` and pass --token or set OFFISWAP_TOKEN")
	}
	if client.LooksExpired(o.token, o.now()) {
		ui.PrintWarning(cmd.ErrOrStderr(), "token appears to be expired; log in again if the request is rejected")
	}
	return o.token, nil
}

func (o *options) printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
