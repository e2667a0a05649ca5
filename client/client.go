// Package client talks to the calorie tracker HTTP API.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/souramoo/calorie-counter-vibe/stats"

	"github.com/go-resty/resty/v2"
)

var ErrNotLoggedIn = errors.New("not logged in, run `calctl login` first")

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

type errorBody struct {
	Error string `json:"error"`
}

type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)
	return &Client{http: c}
}

type User struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	CalorieGoal    int    `json:"calorieGoal"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Entry struct {
	ID        uint      `json:"id"`
	Date      time.Time `json:"date"`
	Calories  int       `json:"calories"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

type NewEntry struct {
	Date     string `json:"date"`
	Calories int    `json:"calories"`
	Notes    string `json:"notes,omitempty"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type EntryList struct {
	Entries    []Entry    `json:"entries"`
	Pagination Pagination `json:"pagination"`
}

// ListOptions filters GET /api/calories. Zero values are omitted.
type ListOptions struct {
	From  string
	To    string
	Page  int
	Limit int
}

// SeriesOptions selects either a named range or explicit From/To days.
type SeriesOptions struct {
	Range string
	From  string
	To    string
}

type Series struct {
	StartDate string              `json:"startDate"`
	EndDate   string              `json:"endDate"`
	Points    []stats.SeriesPoint `json:"points"`
}

func (c *Client) Register(ctx context.Context, username, email, password string) (Session, error) {
	var out authResponse
	err := c.do(c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username, "email": email, "password": password}).
		SetResult(&out), http.MethodPost, "/api/auth/register")
	if err != nil {
		return Session{}, err
	}
	return Session{Token: out.Token, UserID: out.User.ID, Username: out.User.Username}, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var out authResponse
	err := c.do(c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out), http.MethodPost, "/api/auth/login")
	if err != nil {
		return Session{}, err
	}
	return Session{Token: out.Token, UserID: out.User.ID, Username: out.User.Username}, nil
}

func (c *Client) Me(ctx context.Context, s Session) (*User, error) {
	req, err := c.authed(ctx, s)
	if err != nil {
		return nil, err
	}
	var out User
	if err := c.do(req.SetResult(&out), http.MethodGet, "/api/users/me"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddEntry(ctx context.Context, s Session, in NewEntry) (*Entry, error) {
	req, err := c.authed(ctx, s)
	if err != nil {
		return nil, err
	}
	var out Entry
	if err := c.do(req.SetBody(in).SetResult(&out), http.MethodPost, "/api/calories"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListEntries(ctx context.Context, s Session, opts ListOptions) (*EntryList, error) {
	req, err := c.authed(ctx, s)
	if err != nil {
		return nil, err
	}
	if opts.From != "" {
		req.SetQueryParam("startDate", opts.From)
	}
	if opts.To != "" {
		req.SetQueryParam("endDate", opts.To)
	}
	if opts.Page > 0 {
		req.SetQueryParam("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(opts.Limit))
	}

	var out EntryList
	if err := c.do(req.SetResult(&out), http.MethodGet, "/api/calories"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEntry(ctx context.Context, s Session, id uint) error {
	req, err := c.authed(ctx, s)
	if err != nil {
		return err
	}
	return c.do(req, http.MethodDelete, fmt.Sprintf("/api/calories/%d", id))
}

func (c *Client) Stats(ctx context.Context, s Session, period string) (*stats.PeriodStats, error) {
	req, err := c.authed(ctx, s)
	if err != nil {
		return nil, err
	}
	if period != "" {
		req.SetQueryParam("period", period)
	}
	var out stats.PeriodStats
	if err := c.do(req.SetResult(&out), http.MethodGet, "/api/calories/stats"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Series(ctx context.Context, s Session, opts SeriesOptions) (*Series, error) {
	req, err := c.authed(ctx, s)
	if err != nil {
		return nil, err
	}
	if opts.From != "" || opts.To != "" {
		req.SetQueryParams(map[string]string{"startDate": opts.From, "endDate": opts.To})
	} else if opts.Range != "" {
		req.SetQueryParam("range", opts.Range)
	}
	var out Series
	if err := c.do(req.SetResult(&out), http.MethodGet, "/api/calories/series"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) authed(ctx context.Context, s Session) (*resty.Request, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	return c.http.R().SetContext(ctx).SetAuthToken(s.Token), nil
}

func (c *Client) do(req *resty.Request, method, path string) error {
	var apiErr errorBody
	resp, err := req.SetError(&apiErr).Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Message: apiErr.Error}
	}
	return nil
}
