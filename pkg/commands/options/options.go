// Package options defines shared flag helpers for CLI commands.
package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/wayfare/pkg/activity"
	"tableflip.dev/wayfare/pkg/datekey"
)

// OnOptions selects the day a command operates on.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify the day, example: --on="2025-12-03". Defaults to today.`)
}

func (o *OnOptions) GetOn(now func() time.Time) (datekey.Key, error) {
	if now == nil {
		now = time.Now
	}
	if o.OnString == "" {
		return datekey.Today(now()), nil
	}
	return datekey.Parse(o.OnString)
}

// FieldOptions captures the activity field flags for add and save.
type FieldOptions struct {
	Time     string
	Title    string
	Location string
	Notes    string
}

func AddFieldArgs(cmd *cobra.Command, o *FieldOptions) {
	cmd.Flags().StringVar(&o.Time, "time", "",
		`Start time as HH:MM, 24-hour, example: --time="09:30".`)
	cmd.Flags().StringVar(&o.Title, "title", "",
		"Activity title.")
	cmd.Flags().StringVar(&o.Location, "location", "",
		"Activity location.")
	cmd.Flags().StringVar(&o.Notes, "notes", "",
		"Free-form notes.")
}

// Patch converts the flags that were actually set on the command line into
// an activity patch; untouched flags stay nil so they leave fields alone.
func (o *FieldOptions) Patch(cmd *cobra.Command) activity.Patch {
	p := activity.Patch{}
	if cmd.Flags().Changed("time") {
		p.Time = activity.StrPtr(o.Time)
	}
	if cmd.Flags().Changed("title") {
		p.Title = activity.StrPtr(o.Title)
	}
	if cmd.Flags().Changed("location") {
		p.Location = activity.StrPtr(o.Location)
	}
	if cmd.Flags().Changed("notes") {
		p.Notes = activity.StrPtr(o.Notes)
	}
	return p
}

// SearchOptions narrows the timeline view.
type SearchOptions struct {
	Query string
}

func AddSearchArgs(cmd *cobra.Command, o *SearchOptions) {
	cmd.Flags().StringVarP(&o.Query, "search", "s", "",
		"Filter the view by a case-insensitive substring.")
}

// IDOptions toggles id display in printed timelines.
type IDOptions struct {
	ShowID bool
	ID     string
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each activity.")
}
