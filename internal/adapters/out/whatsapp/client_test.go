package whatsapp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"flowlog/internal/adapters/out/whatsapp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendText_Success(t *testing.T) {
	var gotPath, gotAPIKey string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("apikey")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"key":{"id":"BAE5F4A29E5CD608"}}`))
	}))
	defer server.Close()

	client := whatsapp.NewClient(whatsapp.Config{
		BaseURL:  server.URL,
		Instance: "loja-da-ana",
		APIKey:   "secret-key",
	})

	receipt, err := client.SendText(context.Background(), "5511988887777", "Seu pedido foi enviado!")
	require.NoError(t, err)

	assert.Equal(t, "BAE5F4A29E5CD608", receipt.ProviderMessageID)
	assert.Equal(t, "/message/sendText/loja-da-ana", gotPath)
	assert.Equal(t, "secret-key", gotAPIKey)
	assert.Equal(t, "5511988887777", gotBody["number"])
	assert.Equal(t, "Seu pedido foi enviado!", gotBody["text"])
}

func TestSendText_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"number does not exist"}`))
	}))
	defer server.Close()

	client := whatsapp.NewClient(whatsapp.Config{
		BaseURL:  server.URL,
		Instance: "loja-da-ana",
		APIKey:   "secret-key",
	})

	_, err := client.SendText(context.Background(), "5511900000000", "olá")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "number does not exist")
}

func TestSendText_NotConfigured(t *testing.T) {
	client := whatsapp.NewClient(whatsapp.Config{})

	_, err := client.SendText(context.Background(), "5511988887777", "olá")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
