// Package embedding содержит реализации модели эмбеддингов: HTTP-клиент
// OpenAI-совместимого сервиса, детерминированную модель для разработки
// и обёртку с circuit breaker, кэшем запросов и метриками.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/ignatzorin/projectmatch-backend/internal/recommend"
)

// HTTPClient ходит в OpenAI-совместимый эндпоинт POST {baseURL}/embeddings.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	model      string
	dimension  int
	httpClient *http.Client
}

// NewHTTPClient создаёт клиент модели эмбеддингов.
func NewHTTPClient(baseURL, apiKey, model string, dimension int, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL:   baseURL,
		apiKey:    apiKey,
		model:     model,
		dimension: dimension,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type embeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (c *HTTPClient) ModelVersion() string { return c.model }

func (c *HTTPClient) Dimension() int { return c.dimension }

func (c *HTTPClient) Encode(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EncodeBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EncodeBatch кодирует все тексты одним запросом. Ответ принимается только целиком:
// число векторов и их размерность должны совпасть с ожидаемыми.
func (c *HTTPClient) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	if c.baseURL == "" {
		return nil, fmt.Errorf("embedding: baseURL не задан")
	}

	body, err := json.Marshal(embeddingsRequest{Model: c.model, Input: texts})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding: запрос не выполнен: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("embedding: код ответа %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var result embeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("embedding: не удалось разобрать ответ: %w", err)
	}
	if len(result.Data) != len(texts) {
		return nil, fmt.Errorf("embedding: ожидалось %d векторов, получено %d", len(texts), len(result.Data))
	}

	sort.SliceStable(result.Data, func(i, j int) bool {
		return result.Data[i].Index < result.Data[j].Index
	})

	vectors := make([][]float32, len(result.Data))
	for i, item := range result.Data {
		if item.Index != i {
			return nil, fmt.Errorf("embedding: индексы ответа повреждены: позиция %d, index %d", i, item.Index)
		}
		if len(item.Embedding) != c.dimension {
			return nil, fmt.Errorf("embedding: размерность %d вместо %d", len(item.Embedding), c.dimension)
		}
		vectors[i] = recommend.Normalize(item.Embedding)
	}
	return vectors, nil
}
