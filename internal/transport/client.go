package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"fieldtask/internal/domain"
	"fieldtask/internal/errors"
	"fieldtask/internal/logging"
)

// TokenSource supplies the current bearer token. An empty token means
// the unauthenticated state; requests are then sent without an
// Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Credentials is the payload of a successful login.
type Credentials struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Client speaks the backend's JSON REST surface: it encodes request
// bodies, attaches the bearer token, and normalizes failures into the
// application error taxonomy. It performs no retries and owns no
// timeouts beyond the injected http.Client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	multipart  bool
}

// NewClient creates a backend client. A nil httpClient falls back to a
// default client.
func NewClient(baseURL string, tokens TokenSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     tokens,
	}
}

// UseMultipart switches task create/update to the multipart endpoints,
// which carry the image bytes inline instead of a prior upload.
func (c *Client) UseMultipart(enabled bool) {
	c.multipart = enabled
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   int             `json:"count"`
	Message string          `json:"message"`
}

type taskPayload struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	LocationName string `json:"locationName"`
	PhotoURL     string `json:"photoUrl"`
}

// Login authenticates with the backend and returns the token and
// identity. The login call itself is unauthenticated.
func (c *Client) Login(ctx context.Context, email string, password string) (*Credentials, error) {
	body := map[string]string{"email": email, "password": password}

	data, err := c.do(ctx, http.MethodPost, "/auth/login", body, false, "sign in")
	if err != nil {
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, errors.NewTransportError("sign in", err)
	}
	if creds.Token == "" {
		return nil, errors.NewTransportError("sign in", fmt.Errorf("response carried no token"))
	}
	return &creds, nil
}

// ListTasks fetches the full task list for the session.
func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	data, err := c.do(ctx, http.MethodGet, "/todos", nil, true, "list tasks")
	if err != nil {
		return nil, err
	}

	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, errors.NewTransportError("list tasks", err)
	}
	return tasks, nil
}

// CreateTask persists a draft and returns the canonical record the
// backend assigned. In JSON mode the photo is uploaded first and the
// task references the resulting URL; in multipart mode the image bytes
// travel with the task fields.
func (c *Client) CreateTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	if c.multipart {
		return c.sendTaskMultipart(ctx, http.MethodPost, "/tasks", draft, "create task")
	}

	photoURL, err := c.UploadImage(ctx, draft.PhotoRef)
	if err != nil {
		return nil, err
	}
	payload := taskPayload{
		Title:        draft.Title,
		Description:  draft.Description,
		LocationName: draft.LocationName,
		PhotoURL:     photoURL,
	}

	data, err := c.do(ctx, http.MethodPost, "/todos", payload, true, "create task")
	if err != nil {
		return nil, err
	}
	return decodeTask(data, "create task")
}

// UpdateTask replaces every field of an existing task and returns the
// canonical record.
func (c *Client) UpdateTask(ctx context.Context, id string, draft domain.TaskDraft) (*domain.Task, error) {
	if c.multipart {
		return c.sendTaskMultipart(ctx, http.MethodPut, "/tasks/"+id, draft, "update task")
	}

	photoURL, err := c.UploadImage(ctx, draft.PhotoRef)
	if err != nil {
		return nil, err
	}
	payload := taskPayload{
		Title:        draft.Title,
		Description:  draft.Description,
		LocationName: draft.LocationName,
		PhotoURL:     photoURL,
	}

	data, err := c.do(ctx, http.MethodPut, "/todos/"+id, payload, true, "update task")
	if err != nil {
		return nil, err
	}
	return decodeTask(data, "update task")
}

// SetCompleted flips only the completed flag via a partial update.
func (c *Client) SetCompleted(ctx context.Context, id string, completed bool) (*domain.Task, error) {
	body := map[string]bool{"completed": completed}

	data, err := c.do(ctx, http.MethodPatch, "/todos/"+id, body, true, "toggle task")
	if err != nil {
		return nil, err
	}
	return decodeTask(data, "toggle task")
}

// DeleteTask removes a task. Any 2xx counts as success; no body is
// required.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/todos/"+id, nil, true)
	if err != nil {
		return errors.NewTransportError("delete task", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewTransportError("delete task", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "delete task"); err != nil {
		return err
	}
	return nil
}

func decodeTask(data json.RawMessage, operation string) (*domain.Task, error) {
	var task domain.Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, errors.NewTransportError(operation, err)
	}
	if task.ID == "" {
		return nil, errors.NewTransportError(operation, fmt.Errorf("response carried no task id"))
	}
	return &task, nil
}

// do executes a JSON round trip and returns the envelope's data field.
func (c *Client) do(ctx context.Context, method string, path string, body interface{}, auth bool, operation string) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.NewTransportError(operation, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, path, reader, auth)
	if err != nil {
		return nil, errors.NewTransportError(operation, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewTransportError(operation, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, operation); err != nil {
		return nil, err
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, errors.NewTransportError(operation, err)
	}
	if !env.Success {
		return nil, errors.NewTransportError(operation, fmt.Errorf("backend rejected the request: %s", env.Message))
	}
	return env.Data, nil
}

func (c *Client) newRequest(ctx context.Context, method string, path string, body io.Reader, auth bool) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if auth {
		c.attachToken(ctx, req)
	}
	return req, nil
}

// attachToken adds the bearer header when a token is available. A
// keystore read failure degrades to an unauthenticated request, which
// the backend then rejects like any other bad credential.
func (c *Client) attachToken(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		logging.Debugf("token read failed: %v\n", err)
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func checkStatus(resp *http.Response, operation string) error {
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return errors.NewUnauthorizedError(operation)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewTransportError(operation, fmt.Errorf("status %d", resp.StatusCode)).
			WithContext("status", resp.StatusCode)
	}
	return nil
}
