package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/kmadhuranga/purchy/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransport_RequiresBaseURL(t *testing.T) {
	_, err := NewTransport("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrMissingConfig))
}

func TestNewTransport_RejectsInvalidBaseURL(t *testing.T) {
	for _, baseURL := range []string{"example.com", "ftp://example.com", "http://", "://bad"} {
		_, err := NewTransport(baseURL)
		require.Error(t, err, baseURL)
		assert.True(t, errors.Is(err, common.ErrInvalidConfig), baseURL)
	}
}

func TestTransport_Do(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		wantNil     bool
		wantMessage string
		wantStatus  int
		wantRawBody string
		malformed   bool
	}{
		{
			name:    "2xx with JSON body returns parsed body",
			status:  http.StatusOK,
			body:    `{"items": []}`,
			wantNil: false,
		},
		{
			name:    "2xx with empty body resolves to nil",
			status:  http.StatusOK,
			body:    "",
			wantNil: true,
		},
		{
			name:    "2xx with whitespace body resolves to nil",
			status:  http.StatusNoContent,
			body:    "  \n",
			wantNil: true,
		},
		{
			name:      "2xx with non-JSON body is malformed",
			status:    http.StatusOK,
			body:      "<html>gateway timeout page</html>",
			wantErr:   true,
			malformed: true,
		},
		{
			name:        "non-2xx with message field uses it verbatim",
			status:      http.StatusBadRequest,
			body:        `{"message": "account_id and purchy_ts are required"}`,
			wantErr:     true,
			wantMessage: "account_id and purchy_ts are required",
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "non-2xx JSON without message falls back to HTTP status",
			status:      http.StatusNotFound,
			body:        `{"error": "no such item"}`,
			wantErr:     true,
			wantMessage: "HTTP 404",
			wantStatus:  http.StatusNotFound,
		},
		{
			name:        "non-2xx with non-JSON body keeps raw text",
			status:      http.StatusBadGateway,
			body:        "upstream exploded",
			wantErr:     true,
			wantMessage: "HTTP 502",
			wantStatus:  http.StatusBadGateway,
			wantRawBody: "upstream exploded",
		},
		{
			name:        "non-2xx with empty body",
			status:      http.StatusInternalServerError,
			body:        "",
			wantErr:     true,
			wantMessage: "HTTP 500",
			wantStatus:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			transport, err := NewTransport(server.URL)
			require.NoError(t, err)

			raw, err := transport.Do(context.Background(), http.MethodGet, "/purchies", nil, nil)

			if !tt.wantErr {
				require.NoError(t, err)
				if tt.wantNil {
					assert.Nil(t, raw)
				} else {
					assert.NotNil(t, raw)
				}
				return
			}

			require.Error(t, err)
			if tt.malformed {
				assert.True(t, errors.Is(err, ErrMalformedResponse))
				return
			}

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantStatus, apiErr.Status)
			if tt.wantRawBody != "" {
				assert.Equal(t, tt.wantRawBody, apiErr.RawBody)
			}
		})
	}
}

func TestTransport_Do_SendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport, err := NewTransport(server.URL + "/") // trailing slash is trimmed
	require.NoError(t, err)

	_, err = transport.Do(context.Background(), http.MethodPost, "/accounts", nil, map[string]string{"account_name": "Kandy Farm"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
}

func TestTransport_Do_EncodesQuery(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport, err := NewTransport(server.URL)
	require.NoError(t, err)

	query := url.Values{}
	query.Set("account_id", "acc-1")
	query.Set("purchy_ts", "2024-03-01T10:00:00Z")

	_, err = transport.Do(context.Background(), http.MethodDelete, "/purchies", query, nil)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", gotQuery.Get("account_id"))
	assert.Equal(t, "2024-03-01T10:00:00Z", gotQuery.Get("purchy_ts"))
}
