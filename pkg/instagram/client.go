package instagram

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"instascan/pkg/config"
	"instascan/pkg/errors"
	"instascan/pkg/logger"
	"instascan/pkg/ratelimit"
	"instascan/pkg/retry"
)

// Client talks to the Instagram web API.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	limiter    ratelimit.Limiter
	retryCfg   *retry.Config
	sessionID  string
	logger     logger.Logger
}

// NewClient creates a client from the scanner configuration. The proxy
// is applied to this client's transport only; process environment is
// never touched.
func NewClient(cfg *config.Config, log logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	transport := &http.Transport{}
	if cfg.Instagram.Proxy != "" {
		proxy, err := url.Parse(cfg.Instagram.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	headers := map[string]string{
		"User-Agent":       cfg.Instagram.UserAgent,
		"Accept":           "*/*",
		"Accept-Language":  "en-US,en;q=0.5",
		"X-IG-App-ID":      "936619743392459",
		"X-Requested-With": "XMLHttpRequest",
		"Referer":          BaseURL + "/",
	}

	var cookies []string
	if cfg.Instagram.SessionID != "" {
		cookies = append(cookies, fmt.Sprintf("sessionid=%s", cfg.Instagram.SessionID))
	}
	if cfg.Instagram.CSRFToken != "" {
		cookies = append(cookies, fmt.Sprintf("csrftoken=%s", cfg.Instagram.CSRFToken))
		headers["x-csrftoken"] = cfg.Instagram.CSRFToken
	}
	if len(cookies) > 0 {
		headers["Cookie"] = strings.Join(cookies, "; ")
	}

	retryCfg := &retry.Config{
		MaxAttempts: cfg.RateLimit.MaxRetries,
		Backoff: &retry.ExponentialBackoff{
			BaseDelay:    cfg.RateLimit.RetryDelay,
			MaxDelay:     60 * time.Second,
			Multiplier:   2.0,
			JitterFactor: 0.1,
		},
		RetryIf: retry.DefaultRetryIf,
		Logger:  log,
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Instagram.Timeout,
			Transport: transport,
		},
		headers:   headers,
		limiter:   ratelimit.NewTokenBucket(cfg.RateLimit.RequestsPerMinute, time.Minute),
		retryCfg:  retryCfg,
		sessionID: cfg.Instagram.SessionID,
		logger:    log,
	}, nil
}

// IsAuthenticated reports whether a session cookie is configured
func (c *Client) IsAuthenticated() bool {
	return c.sessionID != ""
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// doRequest performs an HTTP request with the configured headers
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	c.limiter.Wait()

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, errors.Newf(errors.ErrorTypeNetwork, "network error: %v", err)
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": duration,
	})

	return resp, nil
}

// GetJSON performs a GET request with retries and decodes the JSON
// response into target
func (c *Client) GetJSON(requestURL string, target interface{}) error {
	return retry.Do(func() error {
		return c.getJSONOnce(requestURL, target)
	}, c.retryCfg)
}

func (c *Client) getJSONOnce(requestURL string, target interface{}) error {
	req, err := http.NewRequest(http.MethodGet, requestURL, nil)
	if err != nil {
		return errors.Newf(errors.ErrorTypeUnknown, "failed to create request: %v", err)
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkResponseStatus(resp); err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    resp.StatusCode,
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          requestURL,
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return &errors.Error{
			Type:    errors.ErrorTypeParsing,
			Message: fmt.Sprintf("failed to parse JSON: %v", err),
			Code:    resp.StatusCode,
		}
	}

	return nil
}

// checkResponseStatus maps HTTP status codes onto the error taxonomy
func (c *Client) checkResponseStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return &errors.Error{
			Type:    errors.ErrorTypeAuth,
			Message: "authentication required",
			Code:    resp.StatusCode,
		}
	case http.StatusNotFound:
		return &errors.Error{
			Type:    errors.ErrorTypeNotFound,
			Message: "resource not found",
			Code:    resp.StatusCode,
		}
	case http.StatusTooManyRequests:
		c.logger.WarnWithFields("rate limit exceeded", map[string]interface{}{
			"url": resp.Request.URL.String(),
		})
		return &errors.Error{
			Type:    errors.ErrorTypeRateLimit,
			Message: "rate limit exceeded",
			Code:    resp.StatusCode,
		}
	default:
		if resp.StatusCode >= 500 {
			return &errors.Error{
				Type:    errors.ErrorTypeServerError,
				Message: "server error",
				Code:    resp.StatusCode,
			}
		}
		if resp.StatusCode >= 400 {
			return &errors.Error{
				Type:    errors.ErrorTypeUnknown,
				Message: fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
				Code:    resp.StatusCode,
			}
		}
		return nil
	}
}

// FetchProfile fetches the profile data for a username
func (c *Client) FetchProfile(username string) (*UserInfo, error) {
	var response ProfileResponse
	if err := c.GetJSON(GetProfileURL(username), &response); err != nil {
		return nil, err
	}

	if response.RequiresToLogin {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeAuth,
			Message: "Instagram requires authentication to view this profile",
			Code:    http.StatusUnauthorized,
		}
	}

	if response.Data.User == nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeNotFound,
			Message: fmt.Sprintf("profile %q does not exist", username),
			Code:    http.StatusNotFound,
		}
	}

	return response.Data.User, nil
}

// FetchMedia fetches one page of a user's media
func (c *Client) FetchMedia(userID, after string, limit int) (*MediaConnection, error) {
	var response GraphResponse
	if err := c.GetJSON(GetMediaURL(userID, after, limit), &response); err != nil {
		return nil, err
	}
	if response.Data.User == nil {
		return nil, errors.New(errors.ErrorTypeParsing, "media response carries no user")
	}
	return &response.Data.User.EdgeOwnerToTimelineMedia, nil
}

// FetchFollowers fetches one page of a user's followers
func (c *Client) FetchFollowers(userID, after string, limit int) (*FollowConnection, error) {
	var response GraphResponse
	if err := c.GetJSON(GetFollowersURL(userID, after, limit), &response); err != nil {
		return nil, err
	}
	if response.Data.User == nil {
		return nil, errors.New(errors.ErrorTypeParsing, "followers response carries no user")
	}
	return &response.Data.User.EdgeFollowedBy, nil
}

// FetchFollowing fetches one page of the accounts a user follows
func (c *Client) FetchFollowing(userID, after string, limit int) (*FollowConnection, error) {
	var response GraphResponse
	if err := c.GetJSON(GetFollowingURL(userID, after, limit), &response); err != nil {
		return nil, err
	}
	if response.Data.User == nil {
		return nil, errors.New(errors.ErrorTypeParsing, "following response carries no user")
	}
	return &response.Data.User.EdgeFollow, nil
}
