package sendgrid_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	sendgrid_client "github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sendgridV3Payload struct {
	Personalizations []struct {
		To      []map[string]string `json:"to"`
		Cc      []map[string]string `json:"cc,omitempty"`
		Bcc     []map[string]string `json:"bcc,omitempty"`
		Subject string              `json:"subject"`
	} `json:"personalizations"`
	From    map[string]string `json:"from"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func TestNewEmailService(t *testing.T) {
	service := sendgrid_client.NewEmailService("test-api-key", "sender@example.com", "Test Sender")
	assert.NotNil(t, service)
	assert.NotNil(t, service.GetSendGridClient())
}

func TestEmailService_Send(t *testing.T) {
	apiKey := "SG.test-api-key"
	fromEmail := "orders@example.com"
	fromName := "Storefront"

	tests := []struct {
		name          string
		req           *models.EmailNotificationRequest
		status        int
		expectedError string
		checkPayload  func(t *testing.T, p sendgridV3Payload)
	}{
		{
			name: "Success - Text and HTML",
			req: &models.EmailNotificationRequest{
				To:          "customer@example.com",
				Subject:     "Order confirmed",
				Content:     "Thanks for your order",
				HTMLContent: "<p>Thanks for your order</p>",
			},
			status: http.StatusAccepted,
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				require.Len(t, p.Personalizations, 1)
				pers := p.Personalizations[0]
				require.Len(t, pers.To, 1)
				assert.Equal(t, "customer@example.com", pers.To[0]["email"])
				assert.Empty(t, pers.Cc)
				assert.Equal(t, "Order confirmed", pers.Subject)

				assert.Equal(t, fromEmail, p.From["email"])
				assert.Equal(t, fromName, p.From["name"])

				require.Len(t, p.Content, 2)
				assert.Equal(t, "text/plain", p.Content[0].Type)
				assert.Equal(t, "text/html", p.Content[1].Type)
			},
		},
		{
			name: "Success - Text only with CC and BCC",
			req: &models.EmailNotificationRequest{
				To:      "customer@example.com",
				CC:      []string{"cc@example.com"},
				BCC:     []string{"audit@example.com"},
				Subject: "Order shipped",
				Content: "On its way",
			},
			status: http.StatusAccepted,
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				require.Len(t, p.Personalizations, 1)
				pers := p.Personalizations[0]
				require.Len(t, pers.Cc, 1)
				assert.Equal(t, "cc@example.com", pers.Cc[0]["email"])
				require.Len(t, pers.Bcc, 1)
				assert.Equal(t, "audit@example.com", pers.Bcc[0]["email"])

				require.Len(t, p.Content, 1)
				assert.Equal(t, "On its way", p.Content[0].Value)
			},
		},
		{
			name:          "Failure - 4xx",
			req:           &models.EmailNotificationRequest{To: "bad@example.com", Subject: "s", Content: "c"},
			status:        http.StatusBadRequest,
			expectedError: "failed to send email, status code: 400",
		},
		{
			name:          "Failure - 5xx",
			req:           &models.EmailNotificationRequest{To: "customer@example.com", Subject: "s", Content: "c"},
			status:        http.StatusInternalServerError,
			expectedError: "failed to send email, status code: 500",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var payload sendgridV3Payload

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "Bearer "+apiKey, r.Header.Get("Authorization"))

				body, err := io.ReadAll(r.Body)
				assert.NoError(t, err)
				assert.NoError(t, json.Unmarshal(body, &payload))

				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			service := sendgrid_client.NewEmailService(apiKey, fromEmail, fromName)
			service.GetSendGridClient().Request.BaseURL = server.URL

			err := service.Send(t.Context(), tc.req)

			if tc.expectedError == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)
			}

			if tc.checkPayload != nil {
				tc.checkPayload(t, payload)
			}
		})
	}

	t.Run("Failure - Network Error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		service := sendgrid_client.NewEmailService(apiKey, fromEmail, fromName)
		service.GetSendGridClient().Request.BaseURL = server.URL
		server.Close()

		err := service.Send(t.Context(), &models.EmailNotificationRequest{To: "customer@example.com", Subject: "s", Content: "c"})
		assert.Error(t, err)
	})
}
