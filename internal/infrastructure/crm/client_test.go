package crm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/integration"
)

func TestClient_UpsertContact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/contacts/upsert", r.URL.Path)
		assert.Equal(t, "Bearer static-key", r.Header.Get("Authorization"))
		assert.Equal(t, apiVersion, r.Header.Get("Version"))

		var body contactRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "loc-1", body.LocationID)
		assert.Equal(t, "+15145550100", body.Phone)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"contact":{"id":"c-77"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "static-key", LocationID: "loc-1"})

	id, err := client.UpsertContact(context.Background(), integration.ContactInput{FirstName: "Marie", Phone: "+15145550100"})

	require.NoError(t, err)
	assert.Equal(t, "c-77", id)
}

func TestClient_ClientCredentials(t *testing.T) {
	var tokenCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"minted","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/contacts/c-1/tags", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer minted", r.Header.Get("Authorization"))
		var body tagsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"ready-for-pickup"}, body.Tags)
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(Config{
		BaseURL:      server.URL,
		ClientID:     "id",
		ClientSecret: "secret",
		TokenURL:     server.URL + "/oauth/token",
	})

	require.NoError(t, client.AddTag(context.Background(), "c-1", "ready-for-pickup"))
	require.NoError(t, client.AddTag(context.Background(), "c-1", "ready-for-pickup"))
	assert.Equal(t, 1, tokenCalls)
}

func TestClient_RemoveTagUsesDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/contacts/c-1/tags", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "k"})
	assert.NoError(t, client.RemoveTag(context.Background(), "c-1", "ready-for-pickup"))
}

func TestClient_CreateCheckout(t *testing.T) {
	orderID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body checkoutRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "114.98", body.Amount)
		assert.Equal(t, int64(11498), body.AmountCents)
		assert.Equal(t, "CAD", body.Currency)
		assert.Equal(t, orderID.String()+":full", body.ExternalID)
		_, _ = w.Write([]byte(`{"id":"chk_1","url":"https://pay.example/chk_1"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "k"})

	checkout, err := client.CreateCheckout(context.Background(), integration.CheckoutRequest{
		ContactID:   "c-1",
		OrderID:     orderID,
		OrderNumber: 1042,
		Type:        enum.CheckoutTypeFull,
		AmountCents: 11498,
		Description: "Order #1042 (full)",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/chk_1", checkout.URL)
	assert.Equal(t, "c-1", checkout.ContactID)
	assert.Equal(t, int64(11498), checkout.AmountCents)
}

func TestClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid phone"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "k"})
	err := client.SendSMS(context.Background(), "c-1", "hello")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "invalid phone")
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(Config{BaseURL: server.URL, APIKey: "k", Timeout: 50 * time.Millisecond})
	err := client.SendSMS(context.Background(), "c-1", "hello")

	assert.Error(t, err)
}
