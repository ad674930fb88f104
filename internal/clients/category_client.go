package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"category_service/internal/domain"

	"github.com/sirupsen/logrus"
)

// Category is the wire shape of a category as the API returns it. Icon may
// arrive as JSON null from older payloads; that decodes to the empty string.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// APIError carries the failure the service reported with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("category service returned status %d: %s", e.StatusCode, e.Message)
}

// TransportError reports a failure on the caller's side of the wire, such as
// a connection refusal or an undecodable body. It never represents a
// response the service produced.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type CategoryClient interface {
	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, name, icon string) (*Category, error)
	DeleteCategory(ctx context.Context, id int) error
}

type categoryHTTPClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func NewCategoryHTTPClient(baseURL string, timeout time.Duration, logger *logrus.Logger) CategoryClient {
	return &categoryHTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

func (c *categoryHTTPClient) ListCategories(ctx context.Context) ([]Category, error) {
	url := c.baseURL + "/categories"
	c.log.Infof("CategoryClient: Requesting category list from URL: %s", url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.Errorf("CategoryClient: Failed to create list request: %v", err)
		return nil, &TransportError{Op: "create list request", Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("CategoryClient: Failed to execute list request: %v", err)
		return nil, &TransportError{Op: "list categories", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		message := c.failureMessage(resp)
		c.log.Warnf("CategoryClient: List request failed with status %d: %s", resp.StatusCode, message)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	var categories []Category
	if err := json.NewDecoder(resp.Body).Decode(&categories); err != nil {
		c.log.Errorf("CategoryClient: Failed to decode list response: %v", err)
		return nil, &TransportError{Op: "decode list response", Err: err}
	}

	c.log.Infof("CategoryClient: Retrieved %d categories", len(categories))
	return categories, nil
}

func (c *categoryHTTPClient) CreateCategory(ctx context.Context, name, icon string) (*Category, error) {
	// The form blocks obviously bad names before any request goes out; the
	// service check stays authoritative.
	trimmedName := strings.TrimSpace(name)
	if n := utf8.RuneCountInString(trimmedName); n < domain.MinNameLength || n > domain.MaxNameLength {
		c.log.Warnf("CategoryClient: Rejected category name '%s' before submission", name)
		return nil, &domain.ValidationError{Field: "name", Message: "name must be between 2 and 50 characters"}
	}

	payload := map[string]string{"name": name}
	if icon != "" {
		payload["icon"] = icon
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		c.log.Errorf("CategoryClient: Failed to marshal create payload for '%s': %v", name, err)
		return nil, &TransportError{Op: "marshal create payload", Err: err}
	}

	url := c.baseURL + "/categories"
	c.log.Infof("CategoryClient: Creating category '%s' at URL: %s", name, url)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		c.log.Errorf("CategoryClient: Failed to create create request: %v", err)
		return nil, &TransportError{Op: "create create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("CategoryClient: Failed to execute create request for '%s': %v", name, err)
		return nil, &TransportError{Op: "create category", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		message := c.failureMessage(resp)
		c.log.Warnf("CategoryClient: Create request for '%s' failed with status %d: %s", name, resp.StatusCode, message)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	var created Category
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		c.log.Errorf("CategoryClient: Failed to decode create response for '%s': %v", name, err)
		return nil, &TransportError{Op: "decode create response", Err: err}
	}

	c.log.Infof("CategoryClient: Category '%s' created with ID %d", created.Name, created.ID)
	return &created, nil
}

func (c *categoryHTTPClient) DeleteCategory(ctx context.Context, id int) error {
	url := fmt.Sprintf("%s/categories/%d", c.baseURL, id)
	c.log.Infof("CategoryClient: Deleting category ID %d at URL: %s", id, url)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		c.log.Errorf("CategoryClient: Failed to create delete request for ID %d: %v", id, err)
		return &TransportError{Op: "create delete request", Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("CategoryClient: Failed to execute delete request for ID %d: %v", id, err)
		return &TransportError{Op: "delete category", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		message := c.failureMessage(resp)
		c.log.Warnf("CategoryClient: Delete request for ID %d failed with status %d: %s", id, resp.StatusCode, message)
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	c.log.Infof("CategoryClient: Category ID %d deleted", id)
	return nil
}

// failureMessage pulls the human-readable message out of a failure body,
// falling back to a generic one when the body carries none.
func (c *categoryHTTPClient) failureMessage(resp *http.Response) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		return body.Message
	}
	return fmt.Sprintf("request failed with status %d", resp.StatusCode)
}
