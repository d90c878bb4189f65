package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-task-tracker/internal/config"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/models"
	"github.com/go-resty/resty/v2"
)

type httpTaskAPIClient struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewTaskAPIClient constructs the resty implementation of [TaskAPIClient].
// cfg.Token, when set, is used for protected requests until Signup or Login
// replaces it.
//
// Returns an error if cfg.BaseURL is empty or not a valid URL.
func NewTaskAPIClient(cfg config.ClientConfig, logger *logger.Logger) (TaskAPIClient, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json").
		SetError(&models.ErrorResponse{})

	c := &httpTaskAPIClient{client: client, logger: logger}
	c.SetToken(cfg.Token)

	return c, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (c *httpTaskAPIClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *httpTaskAPIClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *httpTaskAPIClient) Signup(ctx context.Context, req models.SignupRequest) (models.AuthResult, error) {
	result, err := call[models.AuthResult](c.request(ctx).SetBody(req), http.MethodPost, "/api/auth/signup")
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("signup: %w", err)
	}

	c.SetToken(result.AccessToken)
	return result, nil
}

func (c *httpTaskAPIClient) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	result, err := call[models.AuthResult](c.request(ctx).SetBody(req), http.MethodPost, "/api/auth/login")
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("login: %w", err)
	}

	c.SetToken(result.AccessToken)
	return result, nil
}

func (c *httpTaskAPIClient) Logout(ctx context.Context) error {
	if _, err := call[models.MessageResponse](c.authedRequest(ctx), http.MethodPost, "/api/auth/logout"); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	c.SetToken("")
	return nil
}

func (c *httpTaskAPIClient) Me(ctx context.Context) (models.User, error) {
	user, err := call[models.User](c.authedRequest(ctx), http.MethodGet, "/api/auth/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me: %w", err)
	}
	return user, nil
}

func (c *httpTaskAPIClient) GetProfile(ctx context.Context) (models.User, error) {
	user, err := call[models.User](c.authedRequest(ctx), http.MethodGet, "/api/user/profile")
	if err != nil {
		return models.User{}, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}

func (c *httpTaskAPIClient) UpdateProfile(ctx context.Context, update models.UserUpdate) (models.User, error) {
	user, err := call[models.User](c.authedRequest(ctx).SetBody(update), http.MethodPut, "/api/user/profile")
	if err != nil {
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (c *httpTaskAPIClient) DeleteProfile(ctx context.Context) error {
	if _, err := call[models.MessageResponse](c.authedRequest(ctx), http.MethodDelete, "/api/user/profile"); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	c.SetToken("")
	return nil
}

func (c *httpTaskAPIClient) CreateTask(ctx context.Context, task models.TaskCreate) (models.Task, error) {
	created, err := call[models.Task](c.authedRequest(ctx).SetBody(task), http.MethodPost, "/api/tasks")
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

func (c *httpTaskAPIClient) ListTasks(ctx context.Context, status models.TaskStatus) ([]models.Task, error) {
	req := c.authedRequest(ctx)
	if status != "" {
		req.SetQueryParam("status_filter", string(status))
	}

	tasks, err := call[[]models.Task](req, http.MethodGet, "/api/tasks")
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

func (c *httpTaskAPIClient) GetTask(ctx context.Context, id string) (models.Task, error) {
	task, err := call[models.Task](c.authedRequest(ctx).SetPathParam("id", id), http.MethodGet, "/api/tasks/{id}")
	if err != nil {
		return models.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	return task, nil
}

func (c *httpTaskAPIClient) UpdateTask(ctx context.Context, id string, update models.TaskUpdate) (models.Task, error) {
	req := c.authedRequest(ctx).SetPathParam("id", id).SetBody(update)

	task, err := call[models.Task](req, http.MethodPut, "/api/tasks/{id}")
	if err != nil {
		return models.Task{}, fmt.Errorf("update task %s: %w", id, err)
	}
	return task, nil
}

func (c *httpTaskAPIClient) DeleteTask(ctx context.Context, id string) error {
	req := c.authedRequest(ctx).SetPathParam("id", id)

	if _, err := call[models.MessageResponse](req, http.MethodDelete, "/api/tasks/{id}"); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

func (c *httpTaskAPIClient) Status(ctx context.Context) (models.StatusResponse, error) {
	status, err := call[models.StatusResponse](c.request(ctx), http.MethodGet, "/api/")
	if err != nil {
		return models.StatusResponse{}, fmt.Errorf("status: %w", err)
	}
	return status, nil
}

func (c *httpTaskAPIClient) request(ctx context.Context) *resty.Request {
	return c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
}

func (c *httpTaskAPIClient) authedRequest(ctx context.Context) *resty.Request {
	req := c.request(ctx)
	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// call executes req and decodes a 2xx body into T.
func call[T any](req *resty.Request, method, path string) (T, error) {
	var result T

	resp, err := req.SetResult(&result).Execute(method, path)
	if err != nil {
		return result, fmt.Errorf("%s %s request: %w", method, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return result, err
	}

	return result, nil
}
