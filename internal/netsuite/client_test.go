package netsuite

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Poleswar/netsuite-order-sync/internal/payload"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSyncOrderSendsAuthenticatedJSON(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, discardLogger())
	res := c.SyncOrder(context.Background(), payload.Order{OrderID: "O1"}, "tok-123")

	require.True(t, res.Success)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "O1", gotBody["orderid"])
}

func TestSyncOrderStatusClassification(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		success bool
	}{
		{"ok", http.StatusOK, true},
		{"created", http.StatusCreated, true},
		{"bad request", http.StatusBadRequest, false},
		{"unauthorized", http.StatusUnauthorized, false},
		{"server error", http.StatusInternalServerError, false},
		{"accepted is not success", http.StatusAccepted, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(`{"detail":"body"}`))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, discardLogger())
			res := c.SyncOrder(context.Background(), payload.Order{OrderID: "O1"}, "tok")

			assert.Equal(t, tc.success, res.Success)
			assert.Equal(t, tc.status, res.HTTPStatus)
			// The raw body is preserved either way for the audit log
			assert.Equal(t, `{"detail":"body"}`, res.ResponseBody)
		})
	}
}

func TestSyncOrderExternalIDPrecedence(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"created only", `{"createdID":"NS-100"}`, "NS-100"},
		{"updated only", `{"updatedID":"NS-200"}`, "NS-200"},
		{"updated wins over created", `{"updatedID":"NS-200","createdID":"NS-100"}`, "NS-200"},
		{"neither", `{}`, ""},
		{"unparseable body", `go away`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, discardLogger())
			res := c.SyncOrder(context.Background(), payload.Order{OrderID: "O1"}, "tok")

			require.True(t, res.Success)
			assert.Equal(t, tc.want, res.ExternalID)
		})
	}
}

func TestSyncOrderTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, discardLogger())
	res := c.SyncOrder(context.Background(), payload.Order{OrderID: "O1"}, "tok")

	assert.False(t, res.Success)
	assert.Zero(t, res.HTTPStatus)
	// Error text stands in for the response body so the attempt is auditable
	assert.NotEmpty(t, res.ResponseBody)
	assert.NotEmpty(t, res.RequestBody)
}
