package client

// http_client.go talks to the moviehub REST API and JSON site routes.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/models"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string            `json:"error"`
	Fields  map[string]string `json:"fields"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + e.Fields[k]
		}
		msg += " (" + strings.Join(parts, ", ") + ")"
	}
	return fmt.Sprintf("%d %s", e.Status, msg)
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// do sends body as JSON and decodes a JSON answer into out, if given.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Auth

func (c *HTTPClient) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	var out dto.RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/users/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/jwt/create/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	var out dto.TokenPair
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/jwt/refresh/", dto.RefreshTokenRequest{Refresh: refreshToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Logout(ctx context.Context, refreshToken string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout/", dto.LogoutRequest{Refresh: refreshToken}, nil)
}

// Catalog

func (c *HTTPClient) ListMovies(ctx context.Context, query url.Values) (*dto.ListPage[dto.MovieListItem], error) {
	var out dto.ListPage[dto.MovieListItem]
	if err := c.do(ctx, http.MethodGet, withQuery("/api/v1/movies/", query), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Movie(ctx context.Context, id int64) (*dto.MovieDetail, error) {
	var out dto.MovieDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/movies/%d/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListPersons(ctx context.Context, query url.Values) (*dto.ListPage[dto.PersonListItem], error) {
	var out dto.ListPage[dto.PersonListItem]
	if err := c.do(ctx, http.MethodGet, withQuery("/api/v1/persons/", query), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Person(ctx context.Context, id int64) (*dto.PersonDetail, error) {
	var out dto.PersonDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/persons/%d/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Genres(ctx context.Context) ([]dto.GenreResponse, error) {
	var out struct {
		Results []dto.GenreResponse `json:"results"`
	}
	if err := c.do(ctx, http.MethodGet, "/genres/", nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (c *HTTPClient) CreateGenre(ctx context.Context, req dto.CreateGenreDTO) (*dto.GenreResponse, error) {
	var out dto.GenreResponse
	if err := c.do(ctx, http.MethodPost, "/genre/create/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Interactions

func (c *HTTPClient) Rate(ctx context.Context, movieID int64, score int) (*dto.RatingResponse, error) {
	var out dto.RatingResponse
	if err := c.do(ctx, http.MethodPost, "/add_rating/", dto.SubmitRatingDTO{Movie: movieID, Score: score}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// React sends a like (1) or dislike (-1); repeating a vote withdraws it.
func (c *HTTPClient) React(ctx context.Context, kind models.TargetKind, id int64, vote int) (*dto.ReactionResponse, error) {
	var out dto.ReactionResponse
	path := fmt.Sprintf("/%s/%d/like_dislike/%d", kind, id, vote)
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Bookmark(ctx context.Context, kind models.TargetKind, id int64) (*dto.BookmarkResponse, error) {
	var out dto.BookmarkResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/%s/%d/bookmark", kind, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Comment(ctx context.Context, movieID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	var out dto.CommentResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/comment/%d/", movieID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Bookmarks(ctx context.Context) (*dto.BookmarkOverview, error) {
	var out struct {
		Bookmarks dto.BookmarkOverview `json:"bookmarks"`
	}
	if err := c.do(ctx, http.MethodGet, "/bookmark/", nil, &out); err != nil {
		return nil, err
	}
	return &out.Bookmarks, nil
}

func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}
