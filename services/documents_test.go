package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"journal-workflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPResolver(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		switch r.URL.Path {
		case "/files/paper.pdf":
			w.WriteHeader(http.StatusOK)
		case "/files/retracted.pdf":
			w.WriteHeader(http.StatusGone)
		case "/files/broken.pdf":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	ctx := context.Background()
	resolver := NewHTTPResolver(server.URL + "/files")

	url, err := resolver.Resolve(ctx, "paper.pdf")
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/files/paper.pdf", url)

	url, err = resolver.Resolve(ctx, server.URL+"/files/paper.pdf")
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/files/paper.pdf", url)

	var nf *models.NotFoundError
	for _, ref := range []string{"missing.pdf", "retracted.pdf"} {
		_, err = resolver.Resolve(ctx, ref)
		require.True(t, errors.As(err, &nf), "%s: got %v", ref, err)
		assert.Equal(t, "document", nf.Entity)
	}

	_, err = resolver.Resolve(ctx, "broken.pdf")
	require.Error(t, err)
	assert.False(t, errors.As(err, &nf))
}

func TestHTTPResolverWithoutBaseURL(t *testing.T) {
	_, err := NewHTTPResolver("").Resolve(context.Background(), "paper.pdf")

	var nf *models.NotFoundError
	assert.True(t, errors.As(err, &nf), "got %v", err)
}
