package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/redmonkez12/offiswap/cmd/offiswap/ui"
	"github.com/redmonkez12/offiswap/internal/auth"
)

func newRegisterCmd(opts *options) *cobra.Command {
	var creds ui.Credentials

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a company account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ui.PromptCredentials(&creds, true); err != nil {
				return err
			}

			req := auth.RegisterRequest{
				Name:     strings.TrimSpace(creds.Name),
				Email:    strings.TrimSpace(creds.Email),
				Password: creds.Password,
			}
			if loc := strings.TrimSpace(creds.Location); loc != "" {
				req.Location = &loc
			}

			u, err := opts.client().Register(cmd.Context(), req)
			if err != nil {
				return err
			}

			if opts.jsonOut {
				return opts.printJSON(cmd, u)
			}
			ui.PrintSuccess(cmd.OutOrStdout(), "Account created.")
			ui.PrintUser(cmd.OutOrStdout(), u)
			return nil
		},
	}

	cmd.Flags().StringVar(&creds.Name, "name", "", "company name")
	cmd.Flags().StringVar(&creds.Email, "email", "", "email address")
	cmd.Flags().StringVar(&creds.Password, "password", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&creds.Location, "location", "", "location")

	return cmd
}

func newLoginCmd(opts *options) *cobra.Command {
	var creds ui.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a token",
		Long:  "Log in and print a token valid for one hour. Export it as OFFISWAP_TOKEN or pass it with --token.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ui.PromptCredentials(&creds, false); err != nil {
				return err
			}

			token, err := opts.client().Login(cmd.Context(), strings.TrimSpace(creds.Email), creds.Password)
			if err != nil {
				return err
			}

			if opts.jsonOut {
				return opts.printJSON(cmd, auth.LoginResponse{Token: token})
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "email address")
	cmd.Flags().StringVar(&creds.Password, "password", "", "password (prompted when omitted)")

	return cmd
}
