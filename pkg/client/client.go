package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"goalsapp/internal/core/domain"
)

const (
	DefaultBaseURL = "http://localhost:3001"

	genericMessage = "something went wrong talking to the server, please try again"
)

// APIError is a non-2xx answer. Message is the server's message when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type GoalInput struct {
	Name           string `json:"name"`
	StartDate      string `json:"start_date,omitempty"`
	PlannedEndDate string `json:"planned_end_date,omitempty"`
}

// GoalPatch sends only the fields that are set. The Clear flags send an
// explicit null.
type GoalPatch struct {
	Name                *string
	StartDate           *string
	PlannedEndDate      *string
	ClearStartDate      bool
	ClearPlannedEndDate bool
}

func (p GoalPatch) MarshalJSON() ([]byte, error) {
	body := map[string]any{}

	if p.Name != nil {
		body["name"] = *p.Name
	}

	setNullable(body, "start_date", p.StartDate, p.ClearStartDate)
	setNullable(body, "planned_end_date", p.PlannedEndDate, p.ClearPlannedEndDate)

	return json.Marshal(body)
}

type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type TaskPatch struct {
	Title            *string
	Description      *string
	Completed        *bool
	ClearDescription bool
}

func (p TaskPatch) MarshalJSON() ([]byte, error) {
	body := map[string]any{}

	if p.Title != nil {
		body["title"] = *p.Title
	}

	setNullable(body, "description", p.Description, p.ClearDescription)

	if p.Completed != nil {
		body["completed"] = *p.Completed
	}

	return json.Marshal(body)
}

func setNullable(body map[string]any, key string, value *string, clear bool) {
	switch {
	case clear:
		body[key] = nil
	case value != nil:
		body[key] = *value
	}
}

func (c *Client) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	goals := []domain.Goal{}
	err := c.do(ctx, http.MethodGet, "/goals", nil, &goals)
	return goals, err
}

func (c *Client) CreateGoal(ctx context.Context, input GoalInput) (domain.Goal, error) {
	var goal domain.Goal
	err := c.do(ctx, http.MethodPost, "/goals", input, &goal)
	return goal, err
}

func (c *Client) GetGoal(ctx context.Context, id int64) (domain.Goal, error) {
	var goal domain.Goal
	err := c.do(ctx, http.MethodGet, goalPath(id), nil, &goal)
	return goal, err
}

func (c *Client) UpdateGoal(ctx context.Context, id int64, patch GoalPatch) (domain.Goal, error) {
	var goal domain.Goal
	err := c.do(ctx, http.MethodPut, goalPath(id), patch, &goal)
	return goal, err
}

func (c *Client) DeleteGoal(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, goalPath(id), nil, nil)
}

func (c *Client) ListTasks(ctx context.Context, goalID int64) ([]domain.Task, error) {
	tasks := []domain.Task{}
	err := c.do(ctx, http.MethodGet, goalPath(goalID)+"/tasks", nil, &tasks)
	return tasks, err
}

func (c *Client) CreateTask(ctx context.Context, goalID int64, input TaskInput) (domain.Task, error) {
	var task domain.Task
	err := c.do(ctx, http.MethodPost, goalPath(goalID)+"/tasks", input, &task)
	return task, err
}

func (c *Client) GetTask(ctx context.Context, id int64) (domain.Task, error) {
	var task domain.Task
	err := c.do(ctx, http.MethodGet, taskPath(id), nil, &task)
	return task, err
}

func (c *Client) UpdateTask(ctx context.Context, id int64, patch TaskPatch) (domain.Task, error) {
	var task domain.Task
	err := c.do(ctx, http.MethodPut, taskPath(id), patch, &task)
	return task, err
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

// ToggleTask flips the completion state of a task and sends nothing else.
func (c *Client) ToggleTask(ctx context.Context, id int64) (domain.Task, error) {
	task, err := c.GetTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	completed := !task.Completed.Bool()

	return c.UpdateTask(ctx, id, TaskPatch{Completed: &completed})
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: genericMessage}

	var payload struct {
		Message string `json:"message"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
	}

	return apiErr
}

func goalPath(id int64) string {
	return "/goals/" + strconv.FormatInt(id, 10)
}

func taskPath(id int64) string {
	return "/tasks/" + strconv.FormatInt(id, 10)
}
