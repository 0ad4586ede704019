package core

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/gnomegl/mcavail/internal/client"
)

// NameChecker performs one availability lookup per call.
type NameChecker interface {
	Check(ctx context.Context, name string) CheckResult
}

type Checker struct {
	client  *client.HTTPClient
	baseURL string
}

func NewChecker(httpClient *client.HTTPClient, baseURL string) *Checker {
	if baseURL == "" {
		baseURL = ProfileLookupURL
	}
	return &Checker{
		client:  httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (ch *Checker) LookupURL(name string) string {
	return ch.baseURL + "/" + url.PathEscape(name)
}

// Check issues exactly one GET for name. Transport failures are returned as
// CheckStatusError with the cause in Error; they are never retried.
func (ch *Checker) Check(ctx context.Context, name string) CheckResult {
	result := CheckResult{
		Name:      name,
		CreatedAt: time.Now(),
	}

	start := time.Now()
	resp, err := ch.makeRequest(ctx, ch.LookupURL(name))
	result.Elapsed = time.Since(start).Seconds()

	if err != nil {
		result.Status = CheckStatusError
		result.Error = NewNetworkError(name, err).Error()
		// the next name goes out through a different proxy, if there is one
		_ = ch.client.RotateProxy()
		return result
	}

	result.ResponseCode = resp.StatusCode
	result.Status = ClassifyResponse(resp.StatusCode, resp.Body)

	if resp.StatusCode == 200 {
		var profile Profile
		if json.Unmarshal([]byte(resp.Body), &profile) == nil {
			result.ProfileID = profile.ID
		}
	}

	return result
}

type HTTPResponse struct {
	StatusCode int
	Body       string
}

func (ch *Checker) makeRequest(ctx context.Context, url string) (*HTTPResponse, error) {
	httpResp, httpErr := ch.client.Get(ctx, url, nil)
	if httpErr != nil {
		return nil, httpErr
	}
	body, readErr := client.ReadResponseBody(httpResp)
	if readErr != nil {
		return nil, readErr
	}
	return &HTTPResponse{
		StatusCode: httpResp.StatusCode,
		Body:       body,
	}, nil
}
