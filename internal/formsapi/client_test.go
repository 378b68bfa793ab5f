package formsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"}),
		WithBaseURL(srv.URL),
		WithWriteLimit(1000, 1000),
	)
}

func TestCreateForm_RequestShape(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/forms", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		info := body["info"].(map[string]any)
		assert.Equal(t, "Customer Survey", info["title"])
		assert.Equal(t, "Customer Survey", info["documentTitle"])
		// Creation never carries a description.
		assert.NotContains(t, info, "description")

		json.NewEncoder(w).Encode(map[string]any{
			"formId":       "form-123",
			"responderUri": "https://docs.google.com/forms/d/e/abc/viewform",
		})
	})

	info, err := client.CreateForm(context.Background(), "Customer Survey")
	require.NoError(t, err)
	assert.Equal(t, "form-123", info.FormID)
	assert.Equal(t, "https://docs.google.com/forms/d/e/abc/viewform", info.ResponderURI)
}

func TestBatchUpdate_EmptyIsNoop(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent for an empty batch")
	})

	result, err := client.BatchUpdate(context.Background(), "form-123", nil)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestBatchUpdate_PostsRequests(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forms/form-123:batchUpdate", r.URL.Path)
		var body struct {
			Requests []map[string]any `json:"requests"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body.Requests, 2)
		json.NewEncoder(w).Encode(map[string]any{"replies": []any{}})
	})

	_, err := client.BatchUpdate(context.Background(), "form-123", []map[string]any{
		{"createItem": map[string]any{}},
		{"deleteItem": map[string]any{}},
	})
	require.NoError(t, err)
}

func TestRemoteError_EnvelopeParsed(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission"}}`))
	})

	_, err := client.GetForm(context.Background(), "form-123")
	var remoteErr *RemoteAPIError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusForbidden, remoteErr.StatusCode)
	assert.Equal(t, "The caller does not have permission", remoteErr.Message)
	assert.False(t, IsRetryable(err))
}

func TestRemoteError_ServerErrorsRetryable(t *testing.T) {
	for _, code := range []int{429, 500, 503} {
		err := &RemoteAPIError{StatusCode: code, Message: "x"}
		assert.True(t, IsRetryable(err), "status %d", code)
	}
	for _, code := range []int{400, 401, 404} {
		err := &RemoteAPIError{StatusCode: code, Message: "x"}
		assert.False(t, IsRetryable(err), "status %d", code)
	}
}

func TestWriteLimit_RefusedLocally(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]any{"formId": "f"})
	}))
	t.Cleanup(srv.Close)

	client := NewClient(
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "t"}),
		WithBaseURL(srv.URL),
		WithWriteLimit(1, 1),
	)

	_, err := client.CreateForm(context.Background(), "First")
	require.NoError(t, err)

	_, err = client.CreateForm(context.Background(), "Second")
	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.True(t, IsRetryable(err))
	assert.Equal(t, 1, calls, "second write must be refused before reaching the wire")
}

func TestListResponses(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forms/form-9/responses", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"responses": []map[string]any{
				{"responseId": "r1"},
				{"responseId": "r2"},
			},
		})
	})

	responses, err := client.ListResponses(context.Background(), "form-9")
	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.Equal(t, "r1", responses[0].ResponseID)
}

func TestDeleteForm(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/forms/form-9", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.DeleteForm(context.Background(), "form-9"))
}
