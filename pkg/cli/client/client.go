// Package client Chain Engine HTTP API客户端
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/LENAX/chain-engine/pkg/api/dto"
	"github.com/LENAX/chain-engine/pkg/core/chain"
)

// ServerError 服务端返回的错误
type ServerError struct {
	StatusCode int
	Kind       string // X-Chain-Error 响应头，非链计算错误时为空
	Message    string
}

func (e *ServerError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("%s (HTTP %d, %s)", e.Message, e.StatusCode, e.Kind)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// Client HTTP API客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New 创建客户端
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ========== Chain API ==========

// Calculate 计算链的首尾节点
func (c *Client) Calculate(ctx context.Context, pairs []chain.Pair) (chain.Result, error) {
	resp, err := c.post(ctx, "/api/v1/chains/calculate", dto.NewCalculateRequest(pairs))
	if err != nil {
		return chain.Result{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return chain.Result{}, fmt.Errorf("读取响应体失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return chain.Result{}, &ServerError{
			StatusCode: resp.StatusCode,
			Kind:       resp.Header.Get("X-Chain-Error"),
			Message:    strings.TrimSpace(string(body)),
		}
	}

	var pair []string
	if err := json.Unmarshal(body, &pair); err != nil {
		return chain.Result{}, fmt.Errorf("解析响应失败: %w, body: %s", err, string(body))
	}
	if len(pair) != 2 {
		return chain.Result{}, fmt.Errorf("unexpected response: %s", string(body))
	}
	return chain.Result{First: pair[0], Last: pair[1]}, nil
}

// Path 计算完整的链
func (c *Client) Path(ctx context.Context, pairs []chain.Pair) (*dto.PathResponse, error) {
	resp, err := c.post(ctx, "/api/v1/chains/path", dto.NewCalculateRequest(pairs))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return decodeEnvelope[dto.PathResponse](resp)
}

// ========== History API ==========

// ListHistory 分页查询计算历史
func (c *Client) ListHistory(ctx context.Context, status string, limit, offset int) (*dto.ListResponse[dto.CalculationRecord], error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}

	path := "/api/v1/history"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return decodeEnvelope[dto.ListResponse[dto.CalculationRecord]](resp)
}

// GetHistory 查询单条计算记录
func (c *Client) GetHistory(ctx context.Context, id string) (*dto.CalculationRecord, error) {
	resp, err := c.get(ctx, "/api/v1/history/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return decodeEnvelope[dto.CalculationRecord](resp)
}

// PurgeHistory 立即删除超过保留期的计算记录，返回删除条数
func (c *Client) PurgeHistory(ctx context.Context) (int64, error) {
	resp, err := c.do(ctx, http.MethodDelete, "/api/v1/history")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	result, err := decodeEnvelope[dto.PurgeResponse](resp)
	if err != nil {
		return 0, err
	}
	return result.Deleted, nil
}

// ========== Cache API ==========

// ClearCache 清空服务端结果缓存，返回清除条数
func (c *Client) ClearCache(ctx context.Context) (int, error) {
	return c.clearCache(ctx, "/api/v1/cache")
}

// EvictCache 删除指定指纹的缓存结果
func (c *Client) EvictCache(ctx context.Context, fingerprint string) error {
	_, err := c.clearCache(ctx, "/api/v1/cache/"+url.PathEscape(fingerprint))
	return err
}

func (c *Client) clearCache(ctx context.Context, path string) (int, error) {
	resp, err := c.do(ctx, http.MethodDelete, path)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	result, err := decodeEnvelope[dto.CacheClearResponse](resp)
	if err != nil {
		return 0, err
	}
	return result.Cleared, nil
}

// ========== Health API ==========

// Health 健康检查
func (c *Client) Health(ctx context.Context) (*dto.HealthResponse, error) {
	resp, err := c.get(ctx, "/health")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return decodeEnvelope[dto.HealthResponse](resp)
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, path)
}

func (c *Client) do(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP请求失败: %w", err)
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("序列化请求体失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP请求失败: %w", err)
	}
	return resp, nil
}

// decodeEnvelope 解析 APIResponse 信封，code 非0时返回 ServerError
func decodeEnvelope[T any](resp *http.Response) (*T, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	var out dto.APIResponse[T]
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("解析响应失败: %w, body: %s", err, string(body))
	}
	if out.Code != 0 || resp.StatusCode >= 400 {
		return nil, &ServerError{
			StatusCode: resp.StatusCode,
			Kind:       resp.Header.Get("X-Chain-Error"),
			Message:    out.Message,
		}
	}
	return &out.Data, nil
}
