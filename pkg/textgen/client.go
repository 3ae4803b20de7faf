package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const generatePath = "/generate-text"

// maxErrorBody 错误响应体最多读取的字节数
const maxErrorBody = 512

var ErrMissingText = errors.New("textgen: response has no generated_text")

// Generator 文本生成客户端
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

type generateRequest struct {
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

type generateResponse struct {
	GeneratedText *string `json:"generated_text"`
	ModelUsed     string  `json:"model_used,omitempty"`
}

// Client 通过HTTP调用文本生成服务
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建客户端，timeout<=0 时使用30秒
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Generate 发送一次生成请求，不重试
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	payload, err := json.Marshal(generateRequest{Prompt: prompt, MaxTokens: maxTokens})
	if err != nil {
		return "", fmt.Errorf("textgen: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("textgen: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("textgen: call generation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("textgen: generation service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("textgen: decode response: %w", err)
	}
	if out.GeneratedText == nil {
		return "", ErrMissingText
	}

	return *out.GeneratedText, nil
}
