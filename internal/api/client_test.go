package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kmadhuranga/purchy/internal/common"
	"github.com/kmadhuranga/purchy/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient returns a client pointed at server, or at a server that
// fails the test when any request arrives if mustNotCall is set.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	return client, server
}

func forbidRequests(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(_ http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s %s", r.Method, r.URL)
	}
}

func TestListFilter_Canonical(t *testing.T) {
	tests := []struct {
		name   string
		filter ListFilter
		want   string
	}{
		{name: "empty selector defaults to ALL", filter: ListFilter{}, want: "account_id=ALL"},
		{name: "specific account preserved", filter: ListFilter{AccountID: "acc-1"}, want: "account_id=acc-1"},
		{
			name:   "date bounds included when set",
			filter: ListFilter{AccountID: "acc-1", From: "2024-01-01", To: "2024-02-01"},
			want:   "account_id=acc-1&from=2024-01-01&to=2024-02-01",
		},
		{
			name:   "empty bounds excluded",
			filter: ListFilter{AccountID: "ALL", From: "", To: ""},
			want:   "account_id=ALL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Values().Encode())
		})
	}
}

func TestClient_ListPurchies_QueryParams(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"items": [], "total_weight": 0, "total_amount": 0}`))
	})

	_, err := client.ListPurchies(context.Background(), ListFilter{From: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "account_id=ALL&from=2024-01-01", gotQuery)
}

func TestClient_ListPurchies_DefensiveShapes(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantRows   int
		wantWeight float64
		wantAmount float64
	}{
		{
			name:       "normal response",
			body:       `{"items": [{"account_id": "a", "purchy_ts": "t1"}], "total_weight": 12.5, "total_amount": 50}`,
			wantRows:   1,
			wantWeight: 12.5,
			wantAmount: 50,
		},
		{
			name:     "missing totals default to zero",
			body:     `{"items": []}`,
			wantRows: 0,
		},
		{
			name:     "items not an array coerced to empty",
			body:     `{"items": {"oops": true}, "total_weight": 3}`,
			wantRows: 0,
		},
		{
			name:     "missing items field",
			body:     `{"total_weight": 0, "total_amount": 0}`,
			wantRows: 0,
		},
		{
			name:     "top-level shape mismatch coerced to empty",
			body:     `[1, 2, 3]`,
			wantRows: 0,
		},
		{
			name:     "empty body",
			body:     "",
			wantRows: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			list, err := client.ListPurchies(context.Background(), ListFilter{})
			require.NoError(t, err)
			require.NotNil(t, list)
			assert.Len(t, list.Items, tt.wantRows)
			if tt.name == "normal response" {
				assert.Equal(t, tt.wantWeight, list.TotalWeight)
				assert.Equal(t, tt.wantAmount, list.TotalAmount)
			}
		})
	}
}

func TestClient_DeletePurchy_RequiresIdentityKeys(t *testing.T) {
	client, _ := newTestClient(t, forbidRequests(t))

	err := client.DeletePurchy(context.Background(), "", "2024-03-01T10:00:00Z")
	require.Error(t, err)
	assert.True(t, common.IsValidation(err))

	err = client.DeletePurchy(context.Background(), "acc-1", "")
	require.Error(t, err)
	assert.True(t, common.IsValidation(err))
}

func TestClient_DeletePurchy_SendsKeys(t *testing.T) {
	var gotMethod, gotAccount, gotTS string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAccount = r.URL.Query().Get("account_id")
		gotTS = r.URL.Query().Get("purchy_ts")
		w.WriteHeader(http.StatusOK)
	})

	err := client.DeletePurchy(context.Background(), "acc-1", "2024-03-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "acc-1", gotAccount)
	assert.Equal(t, "2024-03-01T10:00:00Z", gotTS)
}

func TestClient_UpdatePurchy_RequiresIdentityKeysAndChanges(t *testing.T) {
	client, _ := newTestClient(t, forbidRequests(t))

	_, err := client.UpdatePurchy(context.Background(), "", "ts", map[string]string{"weight": "10"})
	assert.True(t, common.IsValidation(err))

	_, err = client.UpdatePurchy(context.Background(), "acc-1", "", map[string]string{"weight": "10"})
	assert.True(t, common.IsValidation(err))

	_, err = client.UpdatePurchy(context.Background(), "acc-1", "ts", nil)
	assert.True(t, common.IsValidation(err))
}

func TestClient_UpdatePurchy_PayloadShape(t *testing.T) {
	var gotPayload map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotPayload))
		_, _ = w.Write([]byte(`{"message": "Updated successfully", "item": {"account_id": "acc-2", "purchy_ts": "ts"}}`))
	})

	updated, err := client.UpdatePurchy(context.Background(), "acc-1", "ts", map[string]string{
		"weight":         "15",
		"new_account_id": "acc-2",
	})
	require.NoError(t, err)

	// Lookup key is the original account, never the edited one.
	assert.Equal(t, "acc-1", gotPayload["account_id"])
	assert.Equal(t, "ts", gotPayload["purchy_ts"])
	assert.Equal(t, "15", gotPayload["weight"])
	assert.Equal(t, "acc-2", gotPayload["new_account_id"])

	require.NotNil(t, updated)
	assert.Equal(t, "acc-2", updated.AccountID)
}

func TestClient_CreatePurchy_Validation(t *testing.T) {
	client, _ := newTestClient(t, forbidRequests(t))

	tests := []struct {
		name string
		req  CreatePurchyRequest
	}{
		{name: "missing account", req: CreatePurchyRequest{Date: "2024-03-01", Weight: 10}},
		{name: "missing date", req: CreatePurchyRequest{AccountID: "acc-1", Weight: 10}},
		{name: "missing weight", req: CreatePurchyRequest{AccountID: "acc-1", Date: "2024-03-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreatePurchy(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, common.IsValidation(err))
		})
	}
}

func TestClient_CreateAccount_NilOnEmptyBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	created, err := client.CreateAccount(context.Background(), model.Account{AccountName: "Kandy Farm"})
	require.NoError(t, err)
	assert.Nil(t, created)
}

func TestClient_ListAccounts(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"account_id": "acc-1", "account_name": "Kandy Farm"}]`))
	})

	accounts, err := client.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Kandy Farm", accounts[0].AccountName)
}
