package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/order"
	"riderdispatch/internal/pkg/errs"
	"riderdispatch/internal/rider"

	"golang.org/x/oauth2"
)

const (
	DefaultTimeout = 10 * time.Second
	apiPrefix      = "/api/v1"
	maxBodyBytes   = 1 << 20
)

var _ rider.API = (*Client)(nil)

// Client implements rider.API over the dispatch REST API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New returns a client that authenticates every call with the bearer token.
func New(baseURL, token string, timeout time.Duration) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("apiclient: token is required")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	hc := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
	hc.Timeout = timeout

	return NewWithHTTPClient(baseURL, hc)
}

// NewWithHTTPClient uses hc as is. Authentication is up to its transport.
func NewWithHTTPClient(baseURL string, hc *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("apiclient: invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("apiclient: base url %q must be absolute", baseURL)
	}
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{baseURL: u, http: hc}, nil
}

func (c *Client) GetRider(ctx context.Context, riderID kernel.UUID) (rider.Profile, error) {
	var body riderBody
	if err := c.do(ctx, http.MethodGet, riderPath(riderID), nil, &body); err != nil {
		return rider.Profile{}, err
	}
	return body.toProfile(), nil
}

func (c *Client) SetOnline(ctx context.Context, riderID kernel.UUID, online bool) (rider.Profile, error) {
	var body riderBody
	if err := c.do(ctx, http.MethodPut, riderPath(riderID)+"/online", setOnlineBody{Online: online}, &body); err != nil {
		return rider.Profile{}, err
	}
	return body.toProfile(), nil
}

func (c *Client) ListNotifications(ctx context.Context, riderID kernel.UUID) ([]rider.Notification, error) {
	var body []notificationBody
	if err := c.do(ctx, http.MethodGet, riderPath(riderID)+"/notifications", nil, &body); err != nil {
		return nil, err
	}

	feed := make([]rider.Notification, len(body))
	for i, n := range body {
		feed[i] = n.toNotification()
	}
	return feed, nil
}

func (c *Client) AcceptNotification(ctx context.Context, riderID, notificationID kernel.UUID) (rider.Profile, error) {
	var body riderBody
	if err := c.do(ctx, http.MethodPost, notificationPath(riderID, notificationID)+"/accept", nil, &body); err != nil {
		return rider.Profile{}, decisionError(err)
	}
	return body.toProfile(), nil
}

func (c *Client) DeclineNotification(ctx context.Context, riderID, notificationID kernel.UUID) error {
	err := c.do(ctx, http.MethodPost, notificationPath(riderID, notificationID)+"/decline", nil, nil)
	return decisionError(err)
}

func (c *Client) GetOrder(ctx context.Context, orderID kernel.UUID) (rider.Order, error) {
	var body orderBody
	if err := c.do(ctx, http.MethodGet, orderPath(orderID), nil, &body); err != nil {
		return rider.Order{}, err
	}
	return body.toOrder()
}

func (c *Client) AdvanceOrder(ctx context.Context, orderID kernel.UUID, action order.Action) (rider.Order, error) {
	if err := action.Validate(); err != nil {
		return rider.Order{}, err
	}

	var body orderBody
	if err := c.do(ctx, http.MethodPost, orderPath(orderID)+"/advance", advanceBody{Action: action.String()}, &body); err != nil {
		return rider.Order{}, err
	}
	return body.toOrder()
}

// do sends one request and decodes the envelope data into out.
// A nil out expects an empty body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("apiclient: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), reader)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("apiclient: read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeFailure(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}

	var env envelope
	if err = json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("apiclient: %s %s: %w", method, path, errEmptyData)
	}
	if err = json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("apiclient: decode data: %w", err)
	}
	return nil
}

func decodeFailure(status int, raw []byte) error {
	apiErr := &APIError{Status: status}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return apiErr
	}
	for _, e := range env.Errors {
		if apiErr.Code == "" {
			apiErr.Code = e.Code
		}
		apiErr.Messages = append(apiErr.Messages, e.Message)
	}
	return apiErr
}

func riderPath(riderID kernel.UUID) string {
	return apiPrefix + "/riders/" + riderID.String()
}

func orderPath(orderID kernel.UUID) string {
	return apiPrefix + "/orders/" + orderID.String()
}

func notificationPath(riderID, notificationID kernel.UUID) string {
	return riderPath(riderID) + "/notifications/" + notificationID.String()
}

// decisionError marks a conflict or a missing notification as a closed offer.
func decisionError(err error) error {
	if errors.Is(err, ErrConflict) || errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("%w: %w", rider.ErrOfferClosed, err)
	}
	return err
}
