package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// Credentials holds the fields collected for register and login.
type Credentials struct {
	Name     string
	Email    string
	Password string
	Location string
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// PromptCredentials asks for whichever fields are still empty.
// withName adds the company name and location fields used by register.
func PromptCredentials(c *Credentials, withName bool) error {
	var fields []huh.Field

	if withName && c.Name == "" {
		fields = append(fields, huh.NewInput().
			Title("Company name").
			Value(&c.Name).
			Validate(required("name")))
	}
	if c.Email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Placeholder("ops@example.com").
			Value(&c.Email).
			Validate(required("email")))
	}
	if c.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&c.Password).
			Validate(required("password")))
	}
	// location is optional; only ask when a prompt is shown anyway
	if withName && c.Location == "" && len(fields) > 0 {
		fields = append(fields, huh.NewInput().
			Title("Location").
			Description("Optional").
			Value(&c.Location))
	}

	if len(fields) == 0 {
		return nil
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeCatppuccin()).Run()
}
