package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"shopfeed/models"
	"strings"
)

// NetworkError - сбой транспорта или не-2xx ответ эндпоинта ленты
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError - ответ не разобрался в ожидаемую форму.
// Контроллер не различает его с NetworkError: оба дают состояние ошибки.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Fetcher - источник страниц ленты и канал действий для FeedController
type Fetcher interface {
	FetchPage(ctx context.Context, page, limit int) (*models.FeedPage, error)
	PostAction(ctx context.Context, action models.PostAction) (*models.ActionResult, error)
}

// PageFetcher - HTTP-обертка над эндпоинтом /api/feed.
// Без ретраев: политика повторов принадлежит вызывающему контроллеру.
type PageFetcher struct {
	baseURL string
	client  *http.Client
}

func NewPageFetcher(baseURL string) *PageFetcher {
	return &PageFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

// FetchPage запрашивает одну страницу ленты (нумерация с единицы)
func (f *PageFetcher) FetchPage(ctx context.Context, page, limit int) (*models.FeedPage, error) {
	if page < 1 || limit < 1 {
		return nil, fmt.Errorf("page and limit must be positive, got page=%d limit=%d", page, limit)
	}

	url := fmt.Sprintf("%s/api/feed?page=%d&limit=%d", f.baseURL, page, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{Op: "fetch feed page", Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "fetch feed page", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{Op: "fetch feed page", Status: resp.StatusCode}
	}

	var feedPage models.FeedPage
	if err := json.NewDecoder(resp.Body).Decode(&feedPage); err != nil {
		return nil, &ParseError{Op: "fetch feed page", Err: err}
	}
	return &feedPage, nil
}

// PostAction отправляет действие пользователя на эндпоинт ленты
func (f *PageFetcher) PostAction(ctx context.Context, action models.PostAction) (*models.ActionResult, error) {
	body, err := json.Marshal(action)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal action: %w", err)
	}

	url := f.baseURL + "/api/feed"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &NetworkError{Op: "post action", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "post action", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{Op: "post action", Status: resp.StatusCode}
	}

	var result models.ActionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ParseError{Op: "post action", Err: err}
	}
	return &result, nil
}
