// Package reminder builds and delivers the outbound push-notification
// scheduling request for an activity. Scheduling is best effort: a failure
// here never rolls back or blocks the activity save that triggered it.
package reminder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tableflip.dev/wayfare/pkg/activity"
	"tableflip.dev/wayfare/pkg/datekey"
)

// Lead is how far ahead of the activity's start time the notification fires.
const Lead = 5 * time.Minute

// MinBuffer is the smallest head start the provider is given; anything
// sooner is skipped rather than scheduled.
const MinBuffer = 60 * time.Second

var (
	// ErrNoTime means the activity has no parseable start time, so there is
	// nothing to schedule. The save proceeds regardless.
	ErrNoTime = errors.New("reminder: activity has no start time")

	// ErrTooSoon means the computed delivery time is not far enough in the
	// future. The save proceeds regardless.
	ErrTooSoon = errors.New("reminder: delivery time is in the past or too soon")
)

// Reminder is the outbound scheduling request. DeliveryTime serializes as
// RFC3339 with a numeric zone offset, the one unambiguous, round-trippable
// convention this codebase uses for provider timestamps.
type Reminder struct {
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	DeliveryTime time.Time `json:"deliveryTime"`
	UserID       string    `json:"userId,omitempty"`
}

// For computes the reminder for an activity on the given day: the activity's
// local civil start time minus the fixed lead. It validates the result is at
// least MinBuffer in the future of now.
func For(a *activity.Activity, day datekey.Key, now time.Time) (Reminder, error) {
	mins, ok := activity.ClockMinutes(a.Time)
	if !ok {
		return Reminder{}, ErrNoTime
	}
	midnight := day.Time()
	if midnight.IsZero() {
		return Reminder{}, ErrNoTime
	}
	start := midnight.Add(time.Duration(mins) * time.Minute)

	delivery := start.Add(-Lead)
	if delivery.Before(now.Add(MinBuffer)) {
		return Reminder{}, ErrTooSoon
	}

	content := fmt.Sprintf("%s at %s", a.Title, a.Time)
	if a.Location != "" {
		content = fmt.Sprintf("%s at %s, %s", a.Title, a.Time, a.Location)
	}

	return Reminder{
		Title:        "Upcoming activity",
		Content:      content,
		DeliveryTime: delivery,
	}, nil
}

// Client schedules reminders against the notification proxy.
type Client struct {
	// URL is the scheduling endpoint, for example
	// https://example.app/api/schedule-reminder. Empty disables scheduling.
	URL string

	// UserID is the provider player id reminders are addressed to.
	UserID string

	// HTTPClient defaults to a client with a short timeout; the call is
	// fire-and-forget and must never hold up the session.
	HTTPClient *http.Client
}

// Enabled reports whether the client is configured to schedule at all.
func (c *Client) Enabled() bool {
	return c != nil && c.URL != ""
}

// Schedule posts the reminder. The caller only logs the outcome.
func (c *Client) Schedule(ctx context.Context, r Reminder) error {
	if !c.Enabled() {
		return errors.New("reminder: no scheduling endpoint configured")
	}
	if r.UserID == "" {
		r.UserID = c.UserID
	}

	body, err := json.Marshal(r)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("reminder: scheduling endpoint returned %s", resp.Status)
	}
	return nil
}
