package settings

import (
	"fmt"

	"github.com/rizqapp/rizq/internal/cli"
	"github.com/rizqapp/rizq/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone     *string `help:"IANA timezone for day boundaries (e.g. Asia/Jakarta, or 'Local')."`
	CacheTTLMin  *int    `help:"Catalog cache freshness window in minutes."`
	LogDays      *int    `help:"Days shown by 'rizq log'."`
	ShowArabic   *bool   `help:"Show Arabic titles in listings."`
	ShowBenefits *bool   `help:"Show dua benefits in listings."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:       %s\n", settings.Timezone)
		fmt.Printf("  Cache TTL:      %d min\n", settings.CacheTTLMin)
		fmt.Printf("  Log Days:       %d\n", settings.LogDays)
		fmt.Printf("  Show Arabic:    %v\n", settings.ShowArabic)
		fmt.Printf("  Show Benefits:  %v\n", settings.ShowBenefits)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if err := utils.ValidateTimezone(*c.Timezone); err != nil {
			return err
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.CacheTTLMin != nil {
		if *c.CacheTTLMin < 1 {
			return fmt.Errorf("cache TTL must be at least 1 minute")
		}
		settings.CacheTTLMin = *c.CacheTTLMin
		updated = true
	}
	if c.LogDays != nil {
		if *c.LogDays < 1 {
			return fmt.Errorf("log days must be at least 1")
		}
		settings.LogDays = *c.LogDays
		updated = true
	}
	if c.ShowArabic != nil {
		settings.ShowArabic = *c.ShowArabic
		updated = true
	}
	if c.ShowBenefits != nil {
		settings.ShowBenefits = *c.ShowBenefits
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
