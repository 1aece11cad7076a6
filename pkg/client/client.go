// Package client talks to the NoteStack HTTP API and keeps client-side state
// for notes, notebooks and QR imports.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) request(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp, nil
}

func decodeError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		body.Error = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: body.Error}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.request(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	var res authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"name": name, "email": email, "password": password,
	}, &res)
	if err != nil {
		return nil, err
	}
	c.token = res.Token
	return &res.User, nil
}

// Login keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var res authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	}, &res)
	if err != nil {
		return nil, err
	}
	c.token = res.Token
	return &res.User, nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var res struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &res); err != nil {
		return nil, err
	}
	return &res.User, nil
}

func (c *Client) ListNotes(ctx context.Context, notebookId string) ([]Note, error) {
	path := "/api/notes"
	if notebookId != "" {
		path += "?notebookId=" + url.QueryEscape(notebookId)
	}
	var res struct {
		Notes []Note `json:"notes"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res.Notes, nil
}

type noteResponse struct {
	Note Note `json:"note"`
}

func (c *Client) GetNote(ctx context.Context, id string) (*Note, error) {
	var res noteResponse
	if err := c.do(ctx, http.MethodGet, "/api/notes/"+url.PathEscape(id), nil, &res); err != nil {
		return nil, err
	}
	return &res.Note, nil
}

func (c *Client) CreateNote(ctx context.Context, in NoteInput) (*Note, error) {
	var res noteResponse
	if err := c.do(ctx, http.MethodPost, "/api/notes", in, &res); err != nil {
		return nil, err
	}
	return &res.Note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, in NoteInput) (*Note, error) {
	var res noteResponse
	if err := c.do(ctx, http.MethodPut, "/api/notes/"+url.PathEscape(id), in, &res); err != nil {
		return nil, err
	}
	return &res.Note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ShareNote(ctx context.Context, id string) (*ShareData, error) {
	var res struct {
		ShareData ShareData `json:"shareData"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/notes/share/"+url.PathEscape(id), nil, &res); err != nil {
		return nil, err
	}
	return &res.ShareData, nil
}

// ShareQR downloads the share payload rendered as a PNG.
func (c *Client) ShareQR(ctx context.Context, id string, size int) ([]byte, error) {
	path := fmt.Sprintf("/api/notes/share/%s?format=qr&size=%d", url.PathEscape(id), size)
	resp, err := c.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (c *Client) ReceiveNote(ctx context.Context, data ShareData) (*Note, error) {
	var res noteResponse
	if err := c.do(ctx, http.MethodPost, "/api/notes/receive", data, &res); err != nil {
		return nil, err
	}
	return &res.Note, nil
}

func (c *Client) ListNotebooks(ctx context.Context) ([]Notebook, error) {
	var res struct {
		Notebooks []Notebook `json:"notebooks"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/notebooks", nil, &res); err != nil {
		return nil, err
	}
	return res.Notebooks, nil
}

type notebookResponse struct {
	Notebook Notebook `json:"notebook"`
}

func (c *Client) CreateNotebook(ctx context.Context, name string) (*Notebook, error) {
	var res notebookResponse
	if err := c.do(ctx, http.MethodPost, "/api/notebooks", map[string]string{"name": name}, &res); err != nil {
		return nil, err
	}
	return &res.Notebook, nil
}

func (c *Client) RenameNotebook(ctx context.Context, id, name string) (*Notebook, error) {
	var res notebookResponse
	if err := c.do(ctx, http.MethodPut, "/api/notebooks/"+url.PathEscape(id), map[string]string{"name": name}, &res); err != nil {
		return nil, err
	}
	return &res.Notebook, nil
}

// DeleteNotebook returns the server's message, which says how many notes moved.
func (c *Client) DeleteNotebook(ctx context.Context, id string) (string, int64, error) {
	var res struct {
		Message    string `json:"message"`
		MovedNotes int64  `json:"movedNotes"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/notebooks/"+url.PathEscape(id), nil, &res); err != nil {
		return "", 0, err
	}
	return res.Message, res.MovedNotes, nil
}
