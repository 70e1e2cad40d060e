// Package openai клиент OpenAI Chat Completions для генерации
// предложений по расписанию. Ответ модели считается недоверенным:
// клиент возвращает сырой текст, валидация на стороне вызывающего.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

type Config struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

type Client struct {
	config     Config
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(config Config, logger *zap.Logger) *Client {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Model == "" {
		config.Model = "gpt-4"
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// permanentStatus не имеет смысла повторять: проблема в запросе, а не в сети
func permanentStatus(status int) bool {
	return status >= 400 && status < 500 && status != http.StatusTooManyRequests
}

// GenerateCompletion отправляет запрос в Chat Completions и возвращает
// текст первого ответа. Временные ошибки повторяются с экспоненциальной
// задержкой, общее время ограничено таймаутом клиента и контекстом.
func (c *Client) GenerateCompletion(ctx context.Context, systemMessage, userPrompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   2000,
		Temperature: 0.5,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.InitialInterval = 500 * time.Millisecond

	content, err := backoff.RetryWithData(func() (string, error) {
		return c.doRequest(ctx, body)
	}, backoff.WithContext(backoff.WithMaxRetries(retryBackoff, 2), ctx))
	if err != nil {
		return "", err
	}

	return content, nil
}

func (c *Client) doRequest(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("openai api status %d: %s", resp.StatusCode, string(respBody))
		if permanentStatus(resp.StatusCode) {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}

	if len(parsed.Choices) == 0 {
		return "", backoff.Permanent(fmt.Errorf("openai response has no choices"))
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	c.logger.Debug("OpenAI completion received", zap.Int("content_length", len(content)))

	return content, nil
}

// ExtractJSONArray вырезает JSON-массив из ответа модели.
// Модель иногда оборачивает ответ в markdown-ограждения или добавляет
// пояснительный текст вокруг массива.
func ExtractJSONArray(raw string) string {
	cleaned := strings.TrimSpace(raw)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start >= 0 && end > start {
		return cleaned[start : end+1]
	}

	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}
