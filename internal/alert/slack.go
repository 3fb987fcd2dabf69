package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sitewatch/sitewatch/internal/domain"
)

// SlackHandler posts transitions to a Slack incoming webhook. Check
// completions are ignored; only transitions are worth a channel message.
type SlackHandler struct {
	Webhook string
	Client  *http.Client
	Logger  *zap.Logger
}

func NewSlackHandler(webhook string, l *zap.Logger) *SlackHandler {
	if webhook == "" {
		return nil
	}
	return &SlackHandler{
		Webhook: webhook,
		Client:  &http.Client{Timeout: 10 * time.Second},
		Logger:  l,
	}
}

type slackPayload struct {
	Text string `json:"text"`
}

func (h *SlackHandler) OnCheckComplete(domain.CheckResult) {}

func (h *SlackHandler) OnStatusChange(r domain.CheckResult, prev domain.Status) {
	title := ":x: *" + r.URL + "* is DOWN"
	detail := fmt.Sprintf("Reason: %s (was %s)", r.Reason(), prev)
	if r.Up() {
		title = ":white_check_mark: *" + r.URL + "* is back UP"
		detail = fmt.Sprintf("Response time: %.2fms", r.ResponseTimeMS)
	}
	if err := h.send(title + "\n" + detail); err != nil {
		h.Logger.Warn("slack_send_failed", zap.String("url", r.URL), zap.Error(err))
	}
}

func (h *SlackHandler) send(text string) error {
	if h == nil || h.Webhook == "" {
		return errors.New("slack disabled")
	}
	body, _ := json.Marshal(slackPayload{Text: text})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, h.Webhook, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return errors.New("slack non-2xx")
	}
	return nil
}
