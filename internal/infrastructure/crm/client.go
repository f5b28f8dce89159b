// Package crm is the HTTP client of the CRM/invoicing provider: contacts,
// SMS, tags and hosted payment checkouts.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/integration"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/logger"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/money"
)

const (
	apiVersion      = "2021-07-28"
	defaultTimeout  = 10 * time.Second
	defaultCurrency = "CAD"
)

// Config holds the provider credentials. Either APIKey or the client
// credentials triple must be set.
type Config struct {
	BaseURL      string
	APIKey       string
	ClientID     string
	ClientSecret string
	TokenURL     string
	LocationID   string
	Timeout      time.Duration
}

// Client talks to the CRM REST API
type Client struct {
	baseURL    string
	locationID string
	httpClient *http.Client
}

// NewClient creates a CRM client. Requests are authenticated with an OAuth2
// client-credentials token when configured, otherwise with the static key.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	// the token endpoint is bound by the same timeout as API calls
	base := &http.Client{Timeout: timeout}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	var httpClient *http.Client
	if cfg.ClientID != "" && cfg.TokenURL != "" {
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		httpClient = cc.Client(ctx)
	} else {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.APIKey,
			TokenType:   "Bearer",
		}))
	}
	httpClient.Timeout = timeout

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		locationID: cfg.LocationID,
		httpClient: httpClient,
	}
}

// APIError is a non-2xx response from the provider
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("crm %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

type contactRequest struct {
	LocationID string   `json:"locationId,omitempty"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Email      string   `json:"email,omitempty"`
	Language   string   `json:"language,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

type contactResponse struct {
	Contact struct {
		ID string `json:"id"`
	} `json:"contact"`
}

// UpsertContact creates the contact or updates the one matching phone/email
func (c *Client) UpsertContact(ctx context.Context, input integration.ContactInput) (string, error) {
	var out contactResponse
	err := c.do(ctx, http.MethodPost, "/contacts/upsert", contactRequest{
		LocationID: c.locationID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Phone:      input.Phone,
		Email:      input.Email,
		Language:   input.Language,
		Tags:       input.Tags,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Contact.ID == "" {
		return "", fmt.Errorf("crm upsert contact: response has no contact id")
	}
	return out.Contact.ID, nil
}

type messageRequest struct {
	Type      string `json:"type"`
	ContactID string `json:"contactId"`
	Message   string `json:"message"`
}

// SendSMS sends a text message to the contact
func (c *Client) SendSMS(ctx context.Context, contactID, message string) error {
	return c.do(ctx, http.MethodPost, "/conversations/messages", messageRequest{
		Type:      "SMS",
		ContactID: contactID,
		Message:   message,
	}, nil)
}

type tagsRequest struct {
	Tags []string `json:"tags"`
}

// AddTag adds a tag to the contact. Workflows in the CRM react to tags.
func (c *Client) AddTag(ctx context.Context, contactID, tag string) error {
	return c.do(ctx, http.MethodPost, "/contacts/"+url.PathEscape(contactID)+"/tags", tagsRequest{Tags: []string{tag}}, nil)
}

// RemoveTag removes a tag from the contact
func (c *Client) RemoveTag(ctx context.Context, contactID, tag string) error {
	return c.do(ctx, http.MethodDelete, "/contacts/"+url.PathEscape(contactID)+"/tags", tagsRequest{Tags: []string{tag}}, nil)
}

type checkoutRequest struct {
	LocationID  string `json:"locationId,omitempty"`
	ContactID   string `json:"contactId"`
	ExternalID  string `json:"externalId"`
	Name        string `json:"name"`
	Currency    string `json:"currency"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amountCents"`
	Type        string `json:"type"`
}

type checkoutResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCheckout creates a hosted payment page for an order amount
func (c *Client) CreateCheckout(ctx context.Context, req integration.CheckoutRequest) (*integration.Checkout, error) {
	var out checkoutResponse
	err := c.do(ctx, http.MethodPost, "/payments/checkouts", checkoutRequest{
		LocationID:  c.locationID,
		ContactID:   req.ContactID,
		ExternalID:  fmt.Sprintf("%s:%s", req.OrderID, req.Type),
		Name:        req.Description,
		Currency:    defaultCurrency,
		Amount:      money.FormatCents(req.AmountCents),
		AmountCents: req.AmountCents,
		Type:        string(req.Type),
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.URL == "" {
		return nil, fmt.Errorf("crm create checkout: response has no url")
	}

	return &integration.Checkout{
		ID:          out.ID,
		URL:         out.URL,
		Type:        req.Type,
		AmountCents: req.AmountCents,
		ContactID:   req.ContactID,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	log := logger.FromCtx(ctx).With(zap.String("method", method), zap.String("path", path))

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("crm encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("crm build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Version", apiVersion)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("crm request failed", zap.Error(err))
		return fmt.Errorf("crm %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("crm read response: %w", err)
	}

	log.Debug("crm request completed", zap.Int("status", resp.StatusCode), zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Method: method, Path: path, Body: string(respBody)}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("crm decode response: %w", err)
	}
	return nil
}
