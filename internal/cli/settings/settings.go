package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone             *string `help:"IANA timezone used to decide what 'today' is (or 'Local')."`
	CoachModel           *string `help:"Generative model used by the coach."`
	CoachEnabled         *bool   `help:"Enable or disable calls to the coach model."`
	NotificationsEnabled *bool   `help:"Enable or disable streak notifications."`
	UserName             *string `help:"Name used in greetings."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Printf("  User Name:             %s\n", settings.UserName)
		fmt.Println("\nCoach Settings:")
		fmt.Printf("  Coach Enabled:         %v\n", settings.CoachEnabled)
		fmt.Printf("  Coach Model:           %s\n", settings.CoachModel)
		fmt.Println("\nNotification Settings:")
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		tz := strings.TrimSpace(*c.Timezone)
		if _, err := utils.LoadLocation(tz); err != nil {
			return err
		}
		settings.Timezone = tz
		updated = true
	}
	if c.CoachModel != nil {
		model := strings.TrimSpace(*c.CoachModel)
		if model == "" {
			return fmt.Errorf("coach model cannot be empty")
		}
		settings.CoachModel = model
		updated = true
	}
	if c.CoachEnabled != nil {
		settings.CoachEnabled = *c.CoachEnabled
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.UserName != nil {
		settings.UserName = strings.TrimSpace(*c.UserName)
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
