package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/redmonkez12/offiswap/cmd/offiswap/ui"
	"github.com/redmonkez12/offiswap/internal/listing"
)

func newListingsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "listings",
		Aliases: []string{"ls"},
		Short:   "Browse and manage listings",
	}

	cmd.AddCommand(
		newListingsListCmd(opts),
		newListingsMineCmd(opts),
		newListingsGetCmd(opts),
		newListingsCreateCmd(opts),
		newListingsUpdateCmd(opts),
		newListingsDeleteCmd(opts),
	)

	return cmd
}

func newListingsListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show available listings, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listings, err := opts.client().ListListings(cmd.Context())
			if err != nil {
				return err
			}
			return opts.printListings(cmd, listings)
		},
	}
}

func newListingsMineCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "Show your own listings in every status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := opts.requireToken(cmd)
			if err != nil {
				return err
			}
			listings, err := opts.client().MyListings(cmd.Context(), token)
			if err != nil {
				return err
			}
			return opts.printListings(cmd, listings)
		},
	}
}

func newListingsGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseListingID(args[0])
			if err != nil {
				return err
			}
			l, err := opts.client().GetListing(cmd.Context(), id)
			if err != nil {
				return err
			}
			return opts.printListing(cmd, l)
		},
	}
}

func newListingsCreateCmd(opts *options) *cobra.Command {
	var in listing.CreateInput
	var quantity int
	var description, condition, from, until, status string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Post a new listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := opts.requireToken(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("quantity") {
				in.Quantity = &quantity
			}
			in.Description = changedString(cmd, "description", description)
			in.Condition = changedString(cmd, "condition", condition)
			in.AvailableFrom = changedString(cmd, "from", from)
			in.AvailableUntil = changedString(cmd, "until", until)
			in.Status = changedString(cmd, "status", status)

			l, err := opts.client().CreateListing(cmd.Context(), token, in)
			if err != nil {
				return err
			}
			if !opts.jsonOut {
				ui.PrintSuccess(cmd.OutOrStdout(), "Listing created.")
			}
			return opts.printListing(cmd, l)
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "title (required)")
	f.StringVar(&in.ItemType, "type", "", "item type, e.g. furniture (required)")
	f.StringVar(&in.Location, "location", "", "pickup location (required)")
	f.IntVar(&quantity, "quantity", 1, "number of items")
	f.StringVar(&description, "description", "", "free-text description")
	f.StringVar(&condition, "condition", "", "new, like_new, good, fair or poor")
	f.StringVar(&from, "from", "", "available from (YYYY-MM-DD)")
	f.StringVar(&until, "until", "", "available until (YYYY-MM-DD)")
	f.StringVar(&status, "status", "", "available, claimed or exchanged")

	return cmd
}

func newListingsUpdateCmd(opts *options) *cobra.Command {
	var quantity int
	var title, itemType, location, description, condition, from, until, status string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of one of your listings",
		Long:  "Change fields of one of your listings. Only the flags you pass are sent; everything else keeps its value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseListingID(args[0])
			if err != nil {
				return err
			}
			token, err := opts.requireToken(cmd)
			if err != nil {
				return err
			}

			in := listing.UpdateInput{
				Title:          changedString(cmd, "title", title),
				ItemType:       changedString(cmd, "type", itemType),
				Location:       changedString(cmd, "location", location),
				Description:    changedString(cmd, "description", description),
				Condition:      changedString(cmd, "condition", condition),
				AvailableFrom:  changedString(cmd, "from", from),
				AvailableUntil: changedString(cmd, "until", until),
				Status:         changedString(cmd, "status", status),
			}
			if cmd.Flags().Changed("quantity") {
				in.Quantity = &quantity
			}

			l, err := opts.client().UpdateListing(cmd.Context(), token, id, in)
			if err != nil {
				return err
			}
			if !opts.jsonOut {
				ui.PrintSuccess(cmd.OutOrStdout(), "Listing updated.")
			}
			return opts.printListing(cmd, l)
		},
	}

	f := cmd.Flags()
	f.StringVar(&title, "title", "", "title")
	f.StringVar(&itemType, "type", "", "item type")
	f.StringVar(&location, "location", "", "pickup location")
	f.IntVar(&quantity, "quantity", 1, "number of items")
	f.StringVar(&description, "description", "", "free-text description")
	f.StringVar(&condition, "condition", "", "new, like_new, good, fair or poor")
	f.StringVar(&from, "from", "", "available from (YYYY-MM-DD)")
	f.StringVar(&until, "until", "", "available until (YYYY-MM-DD)")
	f.StringVar(&status, "status", "", "available, claimed or exchanged")

	return cmd
}

func newListingsDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your listings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseListingID(args[0])
			if err != nil {
				return err
			}
			token, err := opts.requireToken(cmd)
			if err != nil {
				return err
			}
			msg, err := opts.client().DeleteListing(cmd.Context(), token, id)
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return opts.printJSON(cmd, listing.DeleteResponse{Message: msg})
			}
			ui.PrintSuccess(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func (o *options) printListings(cmd *cobra.Command, listings []listing.Listing) error {
	if o.jsonOut {
		return o.printJSON(cmd, listings)
	}
	ui.PrintListings(cmd.OutOrStdout(), listings)
	return nil
}

func (o *options) printListing(cmd *cobra.Command, l *listing.Listing) error {
	if o.jsonOut {
		return o.printJSON(cmd, l)
	}
	ui.PrintListing(cmd.OutOrStdout(), l)
	return nil
}

// changedString returns &v only when the flag was given on the command line
func changedString(cmd *cobra.Command, name, v string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func parseListingID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid listing ID %q", s)
	}
	return id, nil
}
