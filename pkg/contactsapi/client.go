// Package contactsapi provides a lightweight client for the contacts
// collection API (GET/POST /api/users, DELETE /api/users/{id}).
package contactsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/contactapp/backend/internal/model"
)

// DefaultBaseURL is the collection endpoint used when none is configured.
const DefaultBaseURL = "http://localhost:9000/api/users"

// TotalCountHeader carries the number of contacts matching a list query.
const TotalCountHeader = "X-Total-Count"

// ListParams selects one page of the collection.
type ListParams struct {
	Query string // trimmed; omitted from the request when empty
	Page  int
	Limit int
}

// Client is the interface of the contacts collection API.
type Client interface {
	// List fetches one page of contacts and the total from X-Total-Count.
	List(ctx context.Context, params ListParams) (*model.ContactPage, error)
	// Create posts a new contact and returns it with the server-assigned ID.
	Create(ctx context.Context, in model.ContactInput) (*model.Contact, error)
	// Delete removes the contact with the given ID.
	Delete(ctx context.Context, id string) error
}

// NetworkError reports that the server could not be reached.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "contactsapi: connection failed: " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPStatusError reports a non-2xx response.
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return "HTTP error! Status: " + strconv.Itoa(e.StatusCode)
}

// IsNetworkError reports whether err was caused by a transport failure.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// RealClient is the raw HTTP implementation of Client.
type RealClient struct {
	BaseURL    string
	httpClient *http.Client
}

var _ Client = (*RealClient)(nil)

// NewClient creates a RealClient. An empty baseURL selects DefaultBaseURL and
// a nil httpClient selects http.DefaultClient, so requests rely on the
// transport's own timeouts.
func NewClient(baseURL string, httpClient *http.Client) *RealClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RealClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// List issues GET {base}?q=&_page=&_limit=.
func (c *RealClient) List(ctx context.Context, params ListParams) (*model.ContactPage, error) {
	q := url.Values{}
	if query := strings.TrimSpace(params.Query); query != "" {
		q.Set("q", query)
	}
	q.Set("_page", strconv.Itoa(params.Page))
	q.Set("_limit", strconv.Itoa(params.Limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var contacts []*model.Contact
	if err := json.NewDecoder(resp.Body).Decode(&contacts); err != nil {
		return nil, fmt.Errorf("decode contacts: %w", err)
	}
	if contacts == nil {
		contacts = []*model.Contact{}
	}

	return &model.ContactPage{
		Contacts: contacts,
		Total:    parseTotalCount(resp.Header.Get(TotalCountHeader)),
	}, nil
}

// Create issues POST {base} with the JSON-encoded input.
func (c *RealClient) Create(ctx context.Context, in model.ContactInput) (*model.Contact, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var created model.Contact
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode created contact: %w", err)
	}
	return &created, nil
}

// Delete issues DELETE {base}/{id}.
func (c *RealClient) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+"/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// do sends req and classifies failures. On a non-2xx status the body is
// drained and closed before returning *HTTPStatusError.
func (c *RealClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &NetworkError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// parseTotalCount reads X-Total-Count. Missing or unparsable values count as 0.
func parseTotalCount(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
