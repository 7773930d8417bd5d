package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"hydroboard/internal/domain"
)

// APIClient talks to the ETL backend over HTTP. Every request carries a
// correlation ID and is bounded by the client timeout, so a hung backend
// surfaces as a NetworkError instead of blocking forever.
type APIClient struct {
	baseURL string
	client  *http.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (api *APIClient) FetchSnapshot(ctx context.Context, target domain.Target) (domain.DatasetSnapshot, error) {
	path := PathDatasetInfo
	if target == domain.TargetProcessed {
		path = PathProcessedInfo
	}
	var snapshot domain.DatasetSnapshot
	if err := api.getJSON(ctx, path, &snapshot); err != nil {
		return domain.DatasetSnapshot{}, err
	}
	if snapshot.TotalSize == "" && snapshot.Files == nil {
		return domain.DatasetSnapshot{}, &DataShapeError{URL: api.baseURL + path, Err: errors.New("missing total_size and files")}
	}
	return snapshot, nil
}

func (api *APIClient) TriggerUpdate(ctx context.Context) error {
	url := api.baseURL + PathUpdateData
	requestID := uuid.NewString()
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return &NetworkError{URL: url, RequestID: requestID, Err: err}
	}
	request.Header.Set("X-Request-Id", requestID)
	response, err := api.client.Do(request)
	if err != nil {
		return &NetworkError{URL: url, RequestID: requestID, Err: err}
	}
	defer response.Body.Close()
	io.Copy(io.Discard, response.Body)
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &RemoteProcessingError{URL: url, RequestID: requestID, StatusCode: response.StatusCode}
	}
	return nil
}

// FetchChanges asks the backend for a precomputed diff and falls back to
// fetching the processed snapshot and diffing locally when the backend has
// no changes endpoint.
func (api *APIClient) FetchChanges(ctx context.Context, before domain.DatasetSnapshot) (domain.DatasetChangeSet, error) {
	var changes domain.DatasetChangeSet
	err := api.getJSON(ctx, PathChanges, &changes)
	if err == nil {
		return changes, nil
	}
	if !isNotFound(err) {
		return domain.DatasetChangeSet{}, err
	}
	after, err := api.FetchSnapshot(ctx, domain.TargetProcessed)
	if err != nil {
		return domain.DatasetChangeSet{}, err
	}
	return domain.ComputeChanges(before, after), nil
}

func (api *APIClient) getJSON(ctx context.Context, path string, out interface{}) error {
	url := api.baseURL + path
	requestID := uuid.NewString()
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &NetworkError{URL: url, RequestID: requestID, Err: err}
	}
	request.Header.Set("X-Request-Id", requestID)
	request.Header.Set("Accept", "application/json")
	response, err := api.client.Do(request)
	if err != nil {
		return &NetworkError{URL: url, RequestID: requestID, Err: err}
	}
	defer response.Body.Close()
	if response.StatusCode < 200 || response.StatusCode > 299 {
		io.Copy(io.Discard, response.Body)
		return &RemoteProcessingError{URL: url, RequestID: requestID, StatusCode: response.StatusCode}
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return &DataShapeError{URL: url, Err: err}
	}
	return nil
}
