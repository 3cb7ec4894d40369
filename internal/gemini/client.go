package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/option"

	"github.com/2beens/healthstats/internal/telemetry/metrics"
	"github.com/2beens/healthstats/internal/telemetry/tracing"
)

const (
	DefaultModel       = "gemini-1.5-flash"
	defaultTemperature = 0.3
	pingPrompt         = "Say hello!"
)

var (
	ErrNoAPIKey      = errors.New("GEMINI_API_KEY not set")
	ErrEmptyResponse = errors.New("gemini returned no text")
)

type NewClientParams struct {
	APIKey         string
	Model          string
	Timeout        time.Duration
	MetricsManager *metrics.Manager
}

// Client is a thin wrapper around a single generative model.
type Client struct {
	client         *genai.Client
	model          *genai.GenerativeModel
	modelName      string
	timeout        time.Duration
	metricsManager *metrics.Manager
}

func NewClient(ctx context.Context, params NewClientParams) (*Client, error) {
	if params.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(params.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	modelName := params.Model
	if modelName == "" {
		modelName = DefaultModel
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(defaultTemperature)

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	return &Client{
		client:         client,
		model:          model,
		modelName:      modelName,
		timeout:        timeout,
		metricsManager: params.MetricsManager,
	}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// GenerateText sends parts to the model and returns the concatenated text of
// the first candidate.
func (c *Client) GenerateText(ctx context.Context, operation string, parts []genai.Part) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "gemini.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("gemini.operation", operation),
		attribute.String("gemini.model", c.modelName),
		attribute.Int("gemini.parts", len(parts)),
	)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.model.GenerateContent(ctx, parts...)
	c.observe(operation, start, err)
	if err != nil {
		return "", fmt.Errorf("generate content [%s]: %w", operation, err)
	}

	text := responseText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Ping checks the API key and model by asking for a trivial completion.
func (c *Client) Ping(ctx context.Context) (string, error) {
	return c.GenerateText(ctx, "ping", []genai.Part{genai.Text(pingPrompt)})
}

func (c *Client) observe(operation string, start time.Time, err error) {
	if c.metricsManager == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.metricsManager.CounterGeminiCalls.WithLabelValues(operation, outcome).Inc()
	c.metricsManager.HistogramGeminiDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}
