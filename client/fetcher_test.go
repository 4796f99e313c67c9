package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopfeed/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPageSuccess(t *testing.T) {
	var gotPage, gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		gotLimit = r.URL.Query().Get("limit")
		json.NewEncoder(w).Encode(models.FeedPage{
			Posts:       []models.Post{{ID: "post_1", Kind: models.PostKindVideo}},
			HasMore:     true,
			Total:       12,
			CurrentPage: 2,
			TotalPages:  3,
		})
	}))
	defer server.Close()

	fetcher := NewPageFetcher(server.URL)
	page, err := fetcher.FetchPage(context.Background(), 2, 5)
	require.NoError(t, err)

	assert.Equal(t, "2", gotPage)
	assert.Equal(t, "5", gotLimit)
	assert.Len(t, page.Posts, 1)
	assert.Equal(t, "post_1", page.Posts[0].ID)
	assert.True(t, page.HasMore)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 3, page.TotalPages)
}

func TestFetchPageRejectsBadArguments(t *testing.T) {
	fetcher := NewPageFetcher("http://localhost:1")

	_, err := fetcher.FetchPage(context.Background(), 0, 5)
	assert.Error(t, err)

	_, err = fetcher.FetchPage(context.Background(), 1, 0)
	assert.Error(t, err)
}

func TestFetchPageNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewPageFetcher(server.URL)
	_, err := fetcher.FetchPage(context.Background(), 1, 5)
	require.Error(t, err)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusInternalServerError, netErr.Status)
}

func TestFetchPageTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // соединение будет отклонено

	fetcher := NewPageFetcher(server.URL)
	_, err := fetcher.FetchPage(context.Background(), 1, 5)
	require.Error(t, err)

	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestFetchPageMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a json"))
	}))
	defer server.Close()

	fetcher := NewPageFetcher(server.URL)
	_, err := fetcher.FetchPage(context.Background(), 1, 5)
	require.Error(t, err)

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestPostAction(t *testing.T) {
	var received models.PostAction
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(models.ActionResult{Success: true, Message: "Action add_to_cart completed successfully"})
	}))
	defer server.Close()

	fetcher := NewPageFetcher(server.URL)
	result, err := fetcher.PostAction(context.Background(), models.PostAction{
		ProductID: "post_1_product_1",
		Action:    models.ActionAddToCart,
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, models.ActionAddToCart, received.Action)
	assert.Equal(t, "post_1_product_1", received.ProductID)
}

func TestPostActionServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewPageFetcher(server.URL)
	_, err := fetcher.PostAction(context.Background(), models.PostAction{Action: models.ActionLike})

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
}
