package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/kobzevvv/rulescan/domain"
	"github.com/kobzevvv/rulescan/internal/config"
)

// chatMessage is one message in an OpenAI-compatible chat request
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SemanticAnalyzerImpl talks to an OpenAI-compatible chat completions
// endpoint and turns free-form model output into structured judgements.
// Every failure path degrades to an error the caller records and skips;
// the analyzer never aborts a run.
type SemanticAnalyzerImpl struct {
	client  *http.Client
	baseURL string
	model   string
	apiKey  string

	maxChars    int
	delay       time.Duration
	maxTokens   int
	temperature float64

	// kind narrows the analysis to one angle; empty means all three
	kind domain.AnalysisKind

	lastCall time.Time
}

// NewSemanticAnalyzer builds the analyzer from configuration. When the
// API key environment variable is unset or semantic analysis is
// disabled, a no-op analyzer is returned instead and the run proceeds
// without semantic coverage.
func NewSemanticAnalyzer(cfg *config.SemanticConfig) domain.SemanticAnalyzer {
	if !cfg.Enabled {
		return &NoOpSemanticAnalyzer{reason: "semantic analysis disabled in configuration"}
	}
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return &NoOpSemanticAnalyzer{reason: fmt.Sprintf("%s not set", cfg.APIKeyEnv)}
	}
	return &SemanticAnalyzerImpl{
		client:      &http.Client{Timeout: 60 * time.Second},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		apiKey:      apiKey,
		maxChars:    cfg.MaxChars,
		delay:       time.Duration(cfg.RequestDelayMS) * time.Millisecond,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

// Available reports that the collaborator is configured and credentialed
func (a *SemanticAnalyzerImpl) Available() bool {
	return true
}

// SetKind narrows the analysis to one angle. The zero value asks about
// conflicts, best practices and compatibility in a single request.
func (a *SemanticAnalyzerImpl) SetKind(kind domain.AnalysisKind) {
	a.kind = kind
}

// Judge asks the collaborator to assess one document. The document text
// is truncated to the configured limit before sending, and consecutive
// calls are separated by the configured delay for rate limiting.
func (a *SemanticAnalyzerImpl) Judge(ctx context.Context, doc domain.Document) (*domain.SemanticJudgement, error) {
	if err := a.throttle(ctx); err != nil {
		return nil, err
	}

	raw, err := a.complete(ctx, buildJudgementPrompt(a.kind, doc, a.maxChars))
	if err != nil {
		return nil, domain.NewAnalysisError(fmt.Sprintf("semantic analysis of %s failed", doc.ID), err)
	}

	judgement, err := parseJudgement(raw)
	if err != nil {
		return nil, domain.NewAnalysisError(fmt.Sprintf("unparseable semantic response for %s", doc.ID), err)
	}
	judgement.DocumentID = doc.ID
	return judgement, nil
}

// throttle enforces the inter-call delay without blocking past ctx
func (a *SemanticAnalyzerImpl) throttle(ctx context.Context) error {
	if a.delay <= 0 || a.lastCall.IsZero() {
		a.lastCall = time.Now()
		return nil
	}
	wait := a.delay - time.Since(a.lastCall)
	if wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	a.lastCall = time.Now()
	return nil
}

// complete performs one chat completion request
func (a *SemanticAnalyzerImpl) complete(ctx context.Context, messages []chatMessage) (string, error) {
	payload := map[string]interface{}{
		"model":       a.model,
		"messages":    messages,
		"temperature": a.temperature,
		"max_tokens":  a.maxTokens,
		"stream":      false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return "", fmt.Errorf("endpoint returned status %d but failed to read body: %w", resp.StatusCode, readErr)
		}
		return "", fmt.Errorf("endpoint returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return result.Choices[0].Message.Content, nil
}

// buildJudgementPrompt builds the chat request for one document. With no
// kind set it combines the three analysis angles into one structured
// request returned as a single JSON object.
func buildJudgementPrompt(kind domain.AnalysisKind, doc domain.Document, maxChars int) []chatMessage {
	text := doc.Text
	if maxChars > 0 && len(text) > maxChars {
		text = text[:maxChars]
	}

	system := "You review rule and instruction documents for AI coding agents. " +
		"Respond with a single JSON object and nothing else."
	user := fmt.Sprintf(`%s

Return JSON with these fields:
  "complexity_rating": integer 1-10,
  "cursor_compatibility": integer 1-10,
  "conflicts": list of strings,
  "violations": list of strings,
  "issues": list of strings,
  "reasoning": short string

Document %s:
%s`, kindInstructions(kind), doc.ID, text)

	return []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

func kindInstructions(kind domain.AnalysisKind) string {
	switch kind {
	case domain.AnalysisKindConflicts:
		return "Analyze this rule document for contradictory or conflicting instructions. " +
			"List every pair of instructions that cannot both be followed."
	case domain.AnalysisKindBestPractices:
		return "Analyze the code snippets embedded in this rule document for violations " +
			"of common best practices (SQL joins, pandas usage, naming)."
	case domain.AnalysisKindCompatibility:
		return "Assess how well this rule document suits an AI code editor: " +
			"length, clarity, actionability, and rule specificity."
	default:
		return `Analyze this rule document for:
1. Contradictory or conflicting instructions (conflict detection)
2. Code snippets violating common best practices (best practice detection)
3. How well it suits an AI code editor: length, clarity, actionability (compatibility detection)`
	}
}

// parseJudgement decodes the model output. Models sometimes wrap JSON in
// prose or code fences, so decoding falls back to the outermost brace
// pair before giving up.
func parseJudgement(raw string) (*domain.SemanticJudgement, error) {
	var j domain.SemanticJudgement
	if err := json.Unmarshal([]byte(raw), &j); err == nil {
		return &j, nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// NoOpSemanticAnalyzer is used when the collaborator cannot run at all
type NoOpSemanticAnalyzer struct {
	reason string
}

// Available reports false: semantic coverage is skipped entirely
func (a *NoOpSemanticAnalyzer) Available() bool {
	return false
}

// Judge always returns an unavailable error carrying the skip reason
func (a *NoOpSemanticAnalyzer) Judge(_ context.Context, _ domain.Document) (*domain.SemanticJudgement, error) {
	return nil, domain.NewUnavailableError(a.reason, nil)
}

// SemanticServiceImpl runs the analyzer over a corpus, sequentially.
// Calls are rate limited by the analyzer, so parallelism would only
// serialize on the throttle anyway.
type SemanticServiceImpl struct {
	analyzer domain.SemanticAnalyzer
	progress domain.ProgressManager
}

// NewSemanticService creates a semantic service
func NewSemanticService(analyzer domain.SemanticAnalyzer, progress domain.ProgressManager) *SemanticServiceImpl {
	return &SemanticServiceImpl{analyzer: analyzer, progress: progress}
}

// Available reports whether semantic coverage will be attempted
func (s *SemanticServiceImpl) Available() bool {
	return s.analyzer.Available()
}

// AnalyzeCorpus judges every document, best effort. Per-document
// failures are recorded and skipped; partial coverage is a normal
// outcome, not an error.
func (s *SemanticServiceImpl) AnalyzeCorpus(ctx context.Context, docs []domain.Document) (*domain.SemanticResponse, error) {
	resp := &domain.SemanticResponse{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if !s.analyzer.Available() {
		return resp, nil
	}

	var task domain.TaskProgress = &NoOpTaskProgress{}
	if s.progress != nil {
		task = s.progress.StartTask("Semantic analysis", len(docs))
	}
	defer task.Complete()

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return resp, ctx.Err()
		default:
		}

		task.Describe(doc.ID)
		judgement, err := s.analyzer.Judge(ctx, doc)
		task.Increment(1)
		if err != nil {
			resp.AnalysisErrors = append(resp.AnalysisErrors, err.Error())
			continue
		}
		resp.Judgements = append(resp.Judgements, *judgement)
		resp.DocumentsAnalyzed++
	}
	return resp, nil
}
