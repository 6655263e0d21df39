// Package serve hosts the reminder-scheduling proxy: it validates the
// app's scheduling request and forwards it to the push-notification
// vendor's REST API, keeping the vendor credentials out of clients.
package serve

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const vendorEndpoint = "https://onesignal.com/api/v1/notifications"

// Serve runs the HTTP proxy.
type Serve struct {
	Addr string

	// AppID and APIKey override the environment when set; tests use them.
	AppID  string
	APIKey string

	// Endpoint overrides the vendor URL; tests point it at a local server.
	Endpoint string

	HTTPClient *http.Client
}

// scheduleRequest is the contract the app produces: §6 of the storage and
// interface layout. DeliveryTime must be RFC3339 with a zone offset.
type scheduleRequest struct {
	Title        string `json:"title" binding:"required"`
	Content      string `json:"content" binding:"required"`
	DeliveryTime string `json:"deliveryTime" binding:"required"`
	UserID       string `json:"userId" binding:"required"`
}

func (n *Serve) Do(ctx context.Context) error {
	// Credentials come from the environment, optionally via a .env file.
	_ = godotenv.Load()

	appID := n.AppID
	if appID == "" {
		appID = os.Getenv("ONESIGNAL_APP_ID")
	}
	apiKey := n.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ONESIGNAL_REST_API_KEY")
	}
	if apiKey == "" {
		return errors.New("serve: missing ONESIGNAL_REST_API_KEY")
	}

	endpoint := n.Endpoint
	if endpoint == "" {
		endpoint = vendorEndpoint
	}
	client := n.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/api/schedule-reminder", func(c *gin.Context) {
		var req scheduleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "missing required fields (title, content, deliveryTime, userId)",
			})
			return
		}

		delivery, err := time.Parse(time.RFC3339, req.DeliveryTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":  false,
				"error":    "invalid date format, expected RFC3339 with zone offset: 2006-01-02T15:04:05+08:00",
				"received": req.DeliveryTime,
			})
			return
		}

		now := time.Now()
		if !delivery.After(now.Add(time.Minute)) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":      false,
				"error":        "delivery time must be at least 1 minute in the future",
				"deliveryDate": delivery.Format(time.RFC3339),
				"now":          now.Format(time.RFC3339),
			})
			return
		}

		payload := map[string]any{
			"app_id":             appID,
			"include_player_ids": []string{req.UserID},
			"headings":           map[string]string{"en": req.Title},
			"contents":           map[string]string{"en": req.Content},
			"send_after":         delivery.Format(time.RFC3339),
			"priority":           10,
			"ttl":                86400,
			"data": map[string]any{
				"type":           "activity_reminder",
				"scheduled_time": req.DeliveryTime,
			},
			"web_push_topic": "reminder",
		}

		status, body, err := forward(c.Request.Context(), client, endpoint, apiKey, payload)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}
		if status < 200 || status >= 300 {
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "vendor rejected the notification", "details": json.RawMessage(body)})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"scheduledFor": delivery.Format(time.RFC3339),
			"details":      json.RawMessage(body),
		})
	})

	srv := &http.Server{Addr: n.Addr, Handler: r}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	fmt.Fprintf(os.Stderr, "reminder proxy listening on %s\n", n.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func forward(ctx context.Context, client *http.Client, endpoint, apiKey string, payload map[string]any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, data, nil
}
