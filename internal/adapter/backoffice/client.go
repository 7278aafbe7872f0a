package backoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/backoffice/internal/domain/errors"
	"github.com/polkiloo/backoffice/internal/domain/model"
)

const idempotencyHeader = "Idempotency-Key"

// Client talks to the upstream back-office REST API.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates API client. A non-positive timeout falls back to 10s.
func NewClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse back-office url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("back-office url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: parsed,
		token:   token,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type orderRef struct {
	OrderID string `json:"orderId"`
}

type pipelineRef struct {
	PipelineID string `json:"pipelineId"`
}

type orderStatusChange struct {
	OrderID string            `json:"orderId"`
	Status  model.OrderStatus `json:"status"`
}

type newOrder struct {
	model.OrderForm
	Status model.OrderStatus `json:"status"`
}

// orderEdit carries editable fields only. Status moves through the
// transition endpoints.
type orderEdit struct {
	ID string `json:"id"`
	model.OrderForm
}

type pipelineEdit struct {
	ID string `json:"id"`
	model.PipelineForm
}

func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	err := c.doJSON(ctx, "list orders", http.MethodPost, "/getorders", nil, &out, nil)
	return out, err
}

func (c *Client) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	var out model.Order
	if err := c.doJSON(ctx, "fetch order", http.MethodPost, "/orders/single", orderRef{OrderID: id}, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateOrder(ctx context.Context, form model.OrderForm) (*model.Order, error) {
	var out model.Order
	body := newOrder{OrderForm: form, Status: model.OrderStatusWaiting}
	if err := c.doJSON(ctx, "create order", http.MethodPost, "/orders", body, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOrder(ctx context.Context, id string, form model.OrderForm) (*model.Order, error) {
	var out model.Order
	if err := c.doJSON(ctx, "update order", http.MethodPut, "/orders", orderEdit{ID: id, OrderForm: form}, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteOrders removes orders in bulk and returns the ids the API confirmed.
func (c *Client) DeleteOrders(ctx context.Context, ids []string) ([]string, error) {
	var out []string
	err := c.doJSON(ctx, "delete orders", http.MethodDelete, "/orders", ids, &out, nil)
	return out, err
}

// AcceptOrder submits the full order with status accepted and the chosen priority.
func (c *Client) AcceptOrder(ctx context.Context, order model.Order) (*model.Order, error) {
	var out model.Order
	if err := c.doJSON(ctx, "accept order", http.MethodPut, "/orders/accept", order, &out, idempotent()); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChangeOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	var out model.Order
	body := orderStatusChange{OrderID: id, Status: status}
	if err := c.doJSON(ctx, "change order status", http.MethodPut, "/orders/status/change", body, &out, idempotent()); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) OrderComments(ctx context.Context, id string) ([]model.Comment, error) {
	var out []model.Comment
	err := c.doJSON(ctx, "list order comments", http.MethodPost, "/orders/single/getcomments", orderRef{OrderID: id}, &out, nil)
	return out, err
}

func (c *Client) AddOrderComment(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	var out model.Comment
	if err := c.doJSON(ctx, "add order comment", http.MethodPost, "/orders/single/addcomment", comment, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) OrderFiles(ctx context.Context, id string) ([]model.File, error) {
	var out []model.File
	err := c.doJSON(ctx, "list order files", http.MethodPost, "/orders/single/getfiles", orderRef{OrderID: id}, &out, nil)
	return out, err
}

func (c *Client) AddOrderFile(ctx context.Context, orderID string, upload model.FileUpload) (*model.File, error) {
	var out model.File
	fields := map[string]string{"order": orderID, "file_description": upload.Description}
	if err := c.doMultipart(ctx, "add order file", "/orders/single/addfile", fields, upload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPipelines(ctx context.Context) ([]model.Pipeline, error) {
	var out []model.Pipeline
	err := c.doJSON(ctx, "list pipelines", http.MethodPost, "/getpipelines", nil, &out, nil)
	return out, err
}

func (c *Client) GetPipeline(ctx context.Context, id string) (*model.Pipeline, error) {
	var out model.Pipeline
	if err := c.doJSON(ctx, "fetch pipeline", http.MethodPost, "/pipelines/single", pipelineRef{PipelineID: id}, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePipeline(ctx context.Context, form model.PipelineForm) (*model.Pipeline, error) {
	var out model.Pipeline
	if err := c.doJSON(ctx, "create pipeline", http.MethodPost, "/pipelines", form, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePipeline(ctx context.Context, id string, form model.PipelineForm) (*model.Pipeline, error) {
	var out model.Pipeline
	if err := c.doJSON(ctx, "update pipeline", http.MethodPut, "/pipelines", pipelineEdit{ID: id, PipelineForm: form}, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChangePipelineStatus(ctx context.Context, change model.PipelineStatusChange) (*model.Pipeline, error) {
	var out model.Pipeline
	if err := c.doJSON(ctx, "change pipeline status", http.MethodPost, "/pipelines/change/status", change, &out, idempotent()); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddPipelineComment appends a comment and returns the refreshed pipeline.
func (c *Client) AddPipelineComment(ctx context.Context, comment model.Comment) (*model.Pipeline, error) {
	var out model.Pipeline
	if err := c.doJSON(ctx, "add pipeline comment", http.MethodPost, "/pipelines/single/addcomment", comment, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddPipelineFile uploads an attachment and returns the refreshed pipeline.
func (c *Client) AddPipelineFile(ctx context.Context, pipelineID string, upload model.FileUpload) (*model.Pipeline, error) {
	var out model.Pipeline
	fields := map[string]string{"pipeline": pipelineID, "file_description": upload.Description}
	if err := c.doMultipart(ctx, "add pipeline file", "/pipelines/single/addfile", fields, upload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePipelineAdditionalInfo(ctx context.Context, info model.AdditionalInfo) (*model.Pipeline, error) {
	var out model.Pipeline
	if err := c.doJSON(ctx, "update pipeline additional info", http.MethodPost, "/pipelines/single/additional_info/update", info, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func idempotent() http.Header {
	h := http.Header{}
	h.Set(idempotencyHeader, uuid.NewString())
	return h
}

func (c *Client) doJSON(ctx context.Context, op, method, endpoint string, in, out any, header http.Header) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, endpoint, body)
	if err != nil {
		return &domainErrors.RemoteError{Op: op, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	return c.send(req, op, out)
}

func (c *Client) doMultipart(ctx context.Context, op, endpoint string, fields map[string]string, upload model.FileUpload, out any) error {
	if upload.Content == nil {
		return domainErrors.NewValidationError("file", "required")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", upload.Filename)
	if err != nil {
		return fmt.Errorf("%s: create form file: %w", op, err)
	}
	if _, err := io.Copy(part, upload.Content); err != nil {
		return fmt.Errorf("%s: copy file: %w", op, err)
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("%s: write field %s: %w", op, key, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("%s: close multipart: %w", op, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return &domainErrors.RemoteError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.send(req, op, out)
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, op string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domainErrors.RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &domainErrors.RemoteError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return &domainErrors.RemoteError{Op: op, StatusCode: resp.StatusCode, Err: domainErrors.ErrNotFound}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("back-office request failed",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return &domainErrors.RemoteError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
}
