package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"journal-workflow/models"
)

// DocumentStore resolves opaque file references to fetchable URLs. The workflow never reads
// the bytes.
type DocumentStore interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// HTTPResolver checks references against the document service with a HEAD request.
type HTTPResolver struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPResolver(baseURL string) *HTTPResolver {
	return &HTTPResolver{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *HTTPResolver) Resolve(ctx context.Context, ref string) (string, error) {
	target, err := r.locate(ref)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return "", fmt.Errorf("build document request: %w", err)
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolve document %s: %w", ref, err)
	}
	resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return target, nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return "", &models.NotFoundError{Entity: "document", ID: ref}
	default:
		return "", fmt.Errorf("resolve document %s: document store answered %s", ref, resp.Status)
	}
}

// locate accepts absolute http(s) URLs as is and joins anything else onto BaseURL.
func (r *HTTPResolver) locate(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if u, err := url.Parse(ref); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return u.String(), nil
	}
	if r.BaseURL == "" {
		return "", &models.NotFoundError{Entity: "document", ID: ref}
	}
	target, err := url.JoinPath(r.BaseURL, ref)
	if err != nil {
		return "", models.NewValidationError("manuscript_file", "is not a valid file reference")
	}
	return target, nil
}
