package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/redmonkez12/offiswap/internal/auth"
	"github.com/redmonkez12/offiswap/internal/listing"
)

// PrintSuccess prints a one-line confirmation.
func PrintSuccess(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render(msg))
}

// PrintWarning prints an advisory line.
func PrintWarning(w io.Writer, msg string) {
	fmt.Fprintln(w, warnStyle.Render("Warning: "+msg))
}

// PrintError prints an error message.
func PrintError(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render("Error: "+msg))
}

// PrintUser prints a newly registered account.
func PrintUser(w io.Writer, u *auth.UserResponse) {
	fmt.Fprintln(w, titleStyle.Render(u.Name))
	fmt.Fprintf(w, "  ID:       %s\n", u.ID)
	fmt.Fprintf(w, "  Email:    %s\n", u.Email)
	if u.Location != nil {
		fmt.Fprintf(w, "  Location: %s\n", *u.Location)
	}
	fmt.Fprintln(w)
}

// PrintListings prints one block per listing, or a hint when empty.
func PrintListings(w io.Writer, listings []listing.Listing) {
	if len(listings) == 0 {
		fmt.Fprintln(w, subtleStyle.Render("No listings."))
		return
	}
	for i := range listings {
		PrintListing(w, &listings[i])
	}
}

// PrintListing prints the details of a single listing.
func PrintListing(w io.Writer, l *listing.Listing) {
	status := string(l.Status)
	if style, ok := statusStyles[status]; ok {
		status = style.Render(status)
	}

	fmt.Fprintf(w, "%s  %s\n", titleStyle.Render(l.Title), status)
	fmt.Fprintf(w, "  ID:        %s\n", l.ID)
	fmt.Fprintf(w, "  Type:      %s x%d\n", l.ItemType, l.Quantity)
	if l.Condition != nil {
		fmt.Fprintf(w, "  Condition: %s\n", *l.Condition)
	}
	fmt.Fprintf(w, "  Location:  %s\n", l.Location)
	if l.SellerName != "" {
		fmt.Fprintf(w, "  Seller:    %s\n", l.SellerName)
	}
	if l.AvailableFrom != nil || l.AvailableUntil != nil {
		fmt.Fprintf(w, "  Available: %s - %s\n", formatDate(l.AvailableFrom), formatDate(l.AvailableUntil))
	}
	if l.Description != nil && *l.Description != "" {
		fmt.Fprintln(w, subtleStyle.Render("  "+*l.Description))
	}
	fmt.Fprintln(w)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "open"
	}
	return t.Format(time.DateOnly)
}
