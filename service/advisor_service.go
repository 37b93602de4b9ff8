package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"invest-appraisal/domain"
)

const (
	defaultAdvisorURL   = "https://api.openai.com/v1/chat/completions"
	defaultAdvisorModel = "gpt-4o-mini"
)

type AdvisorConfig struct {
	APIKey   string
	APIURL   string
	Model    string
	Currency string
	Timeout  time.Duration
}

// AdvisorService writes a plain-language explanation of an appraisal. Without
// an API key it only uses the built-in explanation.
type AdvisorService struct {
	apiKey     string
	apiURL     string
	model      string
	currency   string
	enabled    bool
	httpClient *http.Client
	logger     *zap.Logger
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewAdvisorService(cfg AdvisorConfig, logger *zap.Logger) *AdvisorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAdvisorURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultAdvisorModel
	}
	if cfg.Currency == "" {
		cfg.Currency = DefaultCurrency
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &AdvisorService{
		apiKey:     cfg.APIKey,
		apiURL:     cfg.APIURL,
		model:      cfg.Model,
		currency:   cfg.Currency,
		enabled:    cfg.APIKey != "",
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Explain never fails: any error talking to the model falls back to the
// built-in explanation.
func (s *AdvisorService) Explain(ctx context.Context, result domain.AppraisalResult) string {
	if !s.enabled {
		return fallbackExplanation(result)
	}

	explanation, err := s.callLLM(ctx, s.buildPrompt(result))
	if err != nil {
		s.logger.Warn("advisor call failed, using fallback explanation",
			zap.String("calculation_id", result.Metadata.CalculationID),
			zap.Error(err),
		)
		return fallbackExplanation(result)
	}
	return explanation
}

func (s *AdvisorService) buildPrompt(r domain.AppraisalResult) string {
	return fmt.Sprintf(`Explain this investment appraisal to a non-specialist.

SCENARIO:
- Initial investment: %s
- Discount rate: %.2f%%
- Project length: %d years

RESULTS:
- NPV: %s (%s)
- IRR: %s (%s)
- ROI: %s (%s)
- Discounted payback: %s (%s)
- Overall verdict: %s

INSTRUCTIONS:
1. Explain what each metric says about this project.
2. Explain why the overall verdict follows from the numbers.
3. Mention the main risk the investor should watch.

Write 3-4 clear sentences.`,
		FormatCurrency(r.Input.Investment, s.currency), r.Input.RatePercent, len(r.Input.Flows),
		r.Display.NPV, r.Interpretations.NPV.Text,
		r.Display.IRR, r.Interpretations.IRR.Text,
		r.Display.ROI, r.Interpretations.ROI.Text,
		r.Display.Payback, r.Interpretations.Payback.Text,
		r.Recommendation.Text)
}

func (s *AdvisorService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a corporate finance advisor. You explain capital budgeting results (NPV, IRR, ROI, discounted payback) clearly and accurately, without inventing numbers.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("advisor API error (status %d): %s", resp.StatusCode, string(body))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty advisor response")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func fallbackExplanation(r domain.AppraisalResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s. ", r.Recommendation.Text)
	fmt.Fprintf(&b, "At a %.2f%% discount rate the project has an NPV of %s. ", r.Input.RatePercent, r.Display.NPV)

	if r.Metrics.IRR.Computable {
		fmt.Fprintf(&b, "Its IRR of %s ", r.Display.IRR)
	} else {
		b.WriteString("Its IRR cannot be computed ")
	}
	fmt.Fprintf(&b, "and its ROI of %s describe the return. ", r.Display.ROI)

	if r.Metrics.Payback.Recoverable {
		fmt.Fprintf(&b, "The investment is recovered in present-value terms after %s.", r.Display.Payback)
	} else {
		b.WriteString("The investment is never recovered in present-value terms.")
	}
	return b.String()
}
