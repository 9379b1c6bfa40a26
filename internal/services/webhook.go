package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/studyhive-dev/studyhive/internal/models"
	"github.com/studyhive-dev/studyhive/internal/types"
)

type WebhookField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type WebhookPayload struct {
	Username  string         `json:"username"`
	Title     string         `json:"title"`
	Text      string         `json:"text"`
	Fields    []WebhookField `json:"fields"`
	Timestamp string         `json:"timestamp"`
}

const webhookUsername = "StudyHive Ops"

// WebhookNotifier posts operational events to a configured endpoint. It is
// nil-safe at the call sites: when no URL is configured no notifier exists.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	if url == "" {
		return nil
	}

	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// NotifyBackup reports a finished backup run, success or failure.
func (n *WebhookNotifier) NotifyBackup(record *models.Backup) error {
	title := "Backup completed"
	text := fmt.Sprintf("Backup #%d finished successfully", record.ID)

	if record.Status == types.BackupStatusFailed {
		title = "Backup failed"
		text = fmt.Sprintf("Backup #%d failed: %s", record.ID, record.ErrorMessage)
	}

	payload := WebhookPayload{
		Username: webhookUsername,
		Title:    title,
		Text:     text,
		Fields: []WebhookField{
			{Name: "Status", Value: record.Status},
			{Name: "Size", Value: fmt.Sprintf("%d bytes", record.SizeBytes)},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return n.post(payload)
}

func (n *WebhookNotifier) post(payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
