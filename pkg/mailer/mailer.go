// Package mailer delivers transactional email over the Resend HTTP API.
// Delivery is best-effort: callers treat a send failure as a warning, never
// as a request failure.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"
)

const (
	resendAPIURL    = "https://api.resend.com"
	pathEmails      = "/emails"
	requestTimeout  = 10 * time.Second
	welcomeSubject  = "Welcome to WeShow"
	errAPIKeyEmpty  = "mailer: API key not configured"
	errAPIStatusFmt = "mailer: API returned status %d: %s"
)

type Config struct {
	APIKey      string
	FromAddress string
	// APIURL overrides the Resend endpoint; tests point it at a local server.
	APIURL string
}

type Mailer struct {
	apiKey      string
	fromAddress string
	apiURL      string
	client      *http.Client
	welcomeTmpl *template.Template
}

func New(cfg Config) (*Mailer, error) {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = resendAPIURL
	}

	tmpl, err := template.New("welcome").Parse(welcomeHTML)
	if err != nil {
		return nil, fmt.Errorf("mailer: failed to parse welcome template: %w", err)
	}

	return &Mailer{
		apiKey:      cfg.APIKey,
		fromAddress: cfg.FromAddress,
		apiURL:      apiURL,
		client:      &http.Client{Timeout: requestTimeout},
		welcomeTmpl: tmpl,
	}, nil
}

type welcomeContext struct {
	StudioName string
}

// SendWelcome greets a newly registered studio.
func (m *Mailer) SendWelcome(ctx context.Context, email, studioName string) error {
	var html bytes.Buffer
	if err := m.welcomeTmpl.Execute(&html, welcomeContext{StudioName: studioName}); err != nil {
		return fmt.Errorf("mailer: failed to render welcome template: %w", err)
	}

	return m.send(ctx, email, welcomeSubject, html.String())
}

func (m *Mailer) send(ctx context.Context, to, subject, html string) error {
	if m.apiKey == "" {
		return fmt.Errorf(errAPIKeyEmpty)
	}

	payload := map[string]interface{}{
		"from":    m.fromAddress,
		"to":      []string{to},
		"subject": subject,
		"html":    html,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mailer: failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiURL+pathEmails, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("mailer: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf(errAPIStatusFmt, resp.StatusCode, string(body))
	}

	return nil
}

const welcomeHTML = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1a1a1a;">
	<h2>Welcome to WeShow{{if .StudioName}}, {{.StudioName}}{{end}}!</h2>
	<p>Your studio account is ready. Add your first client, create a project,
	and share a branded gallery link when the work is done.</p>
	<p>— The WeShow team</p>
</body>
</html>`
