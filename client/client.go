package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// APIError is a failure reported by the server. Message holds the server's
// error field verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is a JSON API client for the taskboard server. It performs no
// retries: each call either completes or fails outright.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var payload struct {
			Error string `json:"error"`
		}
		message := fmt.Sprintf("request failed with status %d", resp.StatusCode)
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
			message = payload.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type RegisterInput struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (*Auth, error) {
	var auth Auth
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Auth, error) {
	body := map[string]string{"email": email, "password": password}
	var auth Auth
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

func (c *Client) Boards(ctx context.Context, userID string) ([]Board, error) {
	var payload struct {
		Boards []Board `json:"boards"`
	}
	path := "/boards?userId=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Boards, nil
}

func (c *Client) Board(ctx context.Context, boardID string) (*Board, error) {
	var payload struct {
		Board Board `json:"board"`
	}
	if err := c.do(ctx, http.MethodGet, "/boards/"+boardID, nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Board, nil
}

func (c *Client) CreateBoard(ctx context.Context, title, description, userID string) (*Board, error) {
	body := map[string]string{"title": title, "description": description, "userId": userID}
	var payload struct {
		Board Board `json:"board"`
	}
	if err := c.do(ctx, http.MethodPost, "/boards", body, &payload); err != nil {
		return nil, err
	}
	return &payload.Board, nil
}

func (c *Client) UpdateBoard(ctx context.Context, boardID, title, description string) (*Board, error) {
	body := map[string]string{"title": title, "description": description}
	var payload struct {
		Board Board `json:"board"`
	}
	if err := c.do(ctx, http.MethodPut, "/boards/"+boardID, body, &payload); err != nil {
		return nil, err
	}
	return &payload.Board, nil
}

func (c *Client) DeleteBoard(ctx context.Context, boardID string) error {
	return c.do(ctx, http.MethodDelete, "/boards/"+boardID, nil, nil)
}

func (c *Client) AddMember(ctx context.Context, boardID, email, role string) (*Board, error) {
	body := map[string]string{"email": email, "role": role}
	var payload struct {
		Board Board `json:"board"`
	}
	if err := c.do(ctx, http.MethodPost, "/boards/"+boardID+"/members", body, &payload); err != nil {
		return nil, err
	}
	return &payload.Board, nil
}

func (c *Client) RemoveMember(ctx context.Context, boardID, userID string) (*Board, error) {
	var payload struct {
		Board Board `json:"board"`
	}
	path := "/boards/" + boardID + "/members?userId=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Board, nil
}

func (c *Client) CreateColumn(ctx context.Context, title, boardID string) (*Column, error) {
	body := map[string]string{"title": title, "boardId": boardID}
	var payload struct {
		Column Column `json:"column"`
	}
	if err := c.do(ctx, http.MethodPost, "/columns", body, &payload); err != nil {
		return nil, err
	}
	return &payload.Column, nil
}

func (c *Client) UpdateColumn(ctx context.Context, columnID, title string) (*Column, error) {
	body := map[string]string{"title": title}
	var payload struct {
		Column Column `json:"column"`
	}
	if err := c.do(ctx, http.MethodPut, "/columns/"+columnID, body, &payload); err != nil {
		return nil, err
	}
	return &payload.Column, nil
}

func (c *Client) DeleteColumn(ctx context.Context, columnID string) error {
	return c.do(ctx, http.MethodDelete, "/columns/"+columnID, nil, nil)
}

type CreateTaskInput struct {
	Title       string   `json:"title"`
	ColumnID    string   `json:"columnId"`
	Description *string  `json:"description,omitempty"`
	AssigneeID  *string  `json:"assigneeId,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func (c *Client) CreateTask(ctx context.Context, in CreateTaskInput) (*Task, error) {
	var payload struct {
		Task Task `json:"task"`
	}
	if err := c.do(ctx, http.MethodPost, "/tasks", in, &payload); err != nil {
		return nil, err
	}
	return &payload.Task, nil
}

// UpdateTaskInput is a partial update. Fields left nil are not sent; the
// assignee is cleared by sending SendAssignee with a nil AssigneeID.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	ColumnID     *string
	AssigneeID   *string
	SendAssignee bool
	Tags         *[]string
}

func (in UpdateTaskInput) MarshalJSON() ([]byte, error) {
	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.ColumnID != nil {
		fields["columnId"] = *in.ColumnID
	}
	if in.SendAssignee {
		fields["assigneeId"] = in.AssigneeID
	}
	if in.Tags != nil {
		fields["tags"] = *in.Tags
	}
	return json.Marshal(fields)
}

func (c *Client) UpdateTask(ctx context.Context, taskID string, in UpdateTaskInput) (*Task, error) {
	var payload struct {
		Task Task `json:"task"`
	}
	if err := c.do(ctx, http.MethodPut, "/tasks/"+taskID, in, &payload); err != nil {
		return nil, err
	}
	return &payload.Task, nil
}

func (c *Client) MoveTask(ctx context.Context, taskID, columnID string) (*Task, error) {
	body := map[string]string{"columnId": columnID}
	var payload struct {
		Task Task `json:"task"`
	}
	if err := c.do(ctx, http.MethodPut, "/tasks/"+taskID+"/move", body, &payload); err != nil {
		return nil, err
	}
	return &payload.Task, nil
}

func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+taskID, nil, nil)
}

func (c *Client) Notifications(ctx context.Context, userID string) ([]Notification, error) {
	var payload struct {
		Notifications []Notification `json:"notifications"`
	}
	path := "/notifications?userId=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Notifications, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) (*Notification, error) {
	body := map[string]bool{"read": true}
	var payload struct {
		Notification Notification `json:"notification"`
	}
	if err := c.do(ctx, http.MethodPut, "/notifications/"+notificationID, body, &payload); err != nil {
		return nil, err
	}
	return &payload.Notification, nil
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	body := map[string]string{"userId": userID}
	return c.do(ctx, http.MethodPut, "/notifications/mark-all-read", body, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, notificationID string) error {
	return c.do(ctx, http.MethodDelete, "/notifications/"+notificationID, nil, nil)
}
