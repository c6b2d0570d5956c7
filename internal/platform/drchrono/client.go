// Package drchrono is a thin typed client for the DrChrono REST API: patient
// search, appointments, line items, clinical-note downloads and the OAuth
// token-refresh call. Calls are sequential and unretried; failures surface as
// RemoteError and callers decide whether to skip or abort.
package drchrono

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	dataTimeout = 10 * time.Second
	pageTimeout = 12 * time.Second
	noteTimeout = 15 * time.Second
)

type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

func New(baseURL, clientID, clientSecret string) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: noteTimeout},
	}
}

func (c *Client) get(ctx context.Context, op, token, path string, q url.Values, timeout time.Duration, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &RemoteError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &RemoteError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// Patient fetches one full patient record.
func (c *Client) Patient(ctx context.Context, token string, id int64) (*Patient, error) {
	var p Patient
	if err := c.get(ctx, "get patient", token, fmt.Sprintf("/api/patients/%d", id), nil, dataTimeout, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SearchFilters narrow a patients_summary search. Empty fields are omitted.
type SearchFilters struct {
	FirstName   string
	LastName    string
	DateOfBirth string // YYYY-MM-DD
	PageSize    int
}

// SearchPatients queries the patients_summary endpoint and returns the
// matching page plus the next-page cursor URL (empty when exhausted).
func (c *Client) SearchPatients(ctx context.Context, token string, f SearchFilters) ([]PatientSummary, string, error) {
	q := url.Values{}
	pageSize := f.PageSize
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}
	q.Set("page_size", strconv.Itoa(pageSize))
	if f.FirstName != "" {
		q.Set("first_name", f.FirstName)
	}
	if f.LastName != "" {
		q.Set("last_name", f.LastName)
	}
	if f.DateOfBirth != "" {
		q.Set("date_of_birth", f.DateOfBirth)
	}

	var page struct {
		Results []PatientSummary `json:"results"`
		Next    string           `json:"next"`
	}
	if err := c.get(ctx, "search patients", token, "/api/patients_summary", q, dataTimeout, &page); err != nil {
		return nil, "", err
	}
	return page.Results, page.Next, nil
}

// Appointments fetches one verbose page of a patient's appointments
// scheduled since the given time.
func (c *Client) Appointments(ctx context.Context, token string, patientID int64, since time.Time, pageSize int) ([]Appointment, error) {
	q := url.Values{}
	q.Set("patient", strconv.FormatInt(patientID, 10))
	q.Set("since", since.Format("2006-01-02T15:04:05"))
	q.Set("page_size", strconv.Itoa(pageSize))
	q.Set("verbose", "true")

	var page struct {
		Results []Appointment `json:"results"`
	}
	if err := c.get(ctx, "list appointments", token, "/api/appointments", q, pageTimeout, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// Appointment fetches one appointment in verbose form.
func (c *Client) Appointment(ctx context.Context, token string, id int64) (*Appointment, error) {
	q := url.Values{}
	q.Set("verbose", "true")
	var a Appointment
	if err := c.get(ctx, "get appointment", token, fmt.Sprintf("/api/appointments/%d", id), q, dataTimeout, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// LineItems fetches the billable charges attached to one appointment.
func (c *Client) LineItems(ctx context.Context, token string, appointmentID int64) ([]LineItem, error) {
	q := url.Values{}
	q.Set("appointment", strconv.FormatInt(appointmentID, 10))

	var page struct {
		Results []LineItem `json:"results"`
	}
	if err := c.get(ctx, "list line items", token, "/api/line_items", q, dataTimeout, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// CurrentUser resolves the DrChrono account behind a bearer token.
func (c *Client) CurrentUser(ctx context.Context, token string) (*User, error) {
	var u User
	if err := c.get(ctx, "get current user", token, "/api/users/current", nil, dataTimeout, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DownloadClinicalNote fetches a clinical-note PDF by its absolute URL.
// Note URLs are pre-signed, so no Authorization header is sent.
func (c *Client) DownloadClinicalNote(ctx context.Context, noteURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, noteTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, noteURL, nil)
	if err != nil {
		return nil, &RemoteError{Op: "download clinical note", Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RemoteError{Op: "download clinical note", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &RemoteError{Op: "download clinical note", StatusCode: resp.StatusCode, Body: string(body)}
	}
	return io.ReadAll(resp.Body)
}

// TokenURL returns the OAuth token endpoint.
func (c *Client) TokenURL() string {
	return c.baseURL + "/o/token/"
}

// AuthorizeURL returns the OAuth authorization endpoint.
func (c *Client) AuthorizeURL() string {
	return c.baseURL + "/o/authorize/"
}

// Refresh exchanges a refresh token for a new access token. A 400 or 401
// from the provider means the refresh token is stale or revoked; callers
// map that to a re-authorization signal rather than retrying.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	ctx, cancel := context.WithTimeout(ctx, dataTimeout)
	defer cancel()

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TokenURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &RemoteError{Op: "refresh token", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RemoteError{Op: "refresh token", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &RemoteError{Op: "refresh token", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tok Token
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, &RemoteError{Op: "refresh token", Err: fmt.Errorf("decode response: %w", err)}
	}
	return &tok, nil
}
