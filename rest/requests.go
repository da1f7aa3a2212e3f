package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// maxErrorBody caps how much of a failed response body ends up in an error.
const maxErrorBody = 512

// GetJSON makes a GET request to the given url and decodes the JSON response body into out.
func GetJSON(ctx context.Context, client *http.Client, requestURL string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}

	return doJSON(client, req, headers, out)
}

// PostJSON marshals body, POSTs it to the given url and decodes the JSON response body into out.
func PostJSON(ctx context.Context, client *http.Client, requestURL string, headers map[string]string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return doJSON(client, req, headers, out)
}

func doJSON(client *http.Client, req *http.Request, headers map[string]string, out any) error {
	if client == nil {
		client = http.DefaultClient
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error requesting endpoint %s: %w", redact(req.URL), unwrapURLError(err))
	}

	defer resp.Body.Close()

	err = checkResponseErrorCode(redact(req.URL), resp)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	err = json.Unmarshal(body, out)
	if err != nil {
		return fmt.Errorf("error decoding response for endpoint %s: %w", redact(req.URL), err)
	}

	return nil
}

func checkResponseErrorCode(requestEndpoint string, resp *http.Response) error {
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Endpoint: requestEndpoint, Status: resp.Status, StatusCode: resp.StatusCode, Body: string(body)}
	}

	return nil
}

// StatusError is returned when an endpoint answers with anything but 200.
type StatusError struct {
	Endpoint   string
	Status     string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("error getting response for endpoint %s: Status %s Body %s", e.Endpoint, e.Status, e.Body)
}

// redact drops the query string, which is where explorers take their api keys.
func redact(u *url.URL) string {
	clean := *u
	clean.RawQuery = ""
	clean.User = nil
	return clean.String()
}

// unwrapURLError strips the *url.Error wrapper so the full url (and its key) is not repeated.
func unwrapURLError(err error) error {
	if urlErr, ok := err.(*url.Error); ok {
		return urlErr.Err
	}
	return err
}
