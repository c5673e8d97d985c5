package insights

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/config"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/game"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/logger"
)

const llmTimeout = 60 * time.Second

// LLM generates notes through an OpenAI-compatible chat completions
// endpoint.
type LLM struct {
	client *http.Client
	cfg    config.Insights
}

// NewLLM creates the LLM generator from its config section.
func NewLLM(cfg config.Insights) *LLM {
	return &LLM{
		client: &http.Client{Timeout: llmTimeout},
		cfg:    cfg,
	}
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
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate prompts the model with the game facts and returns its recap.
func (l *LLM) Generate(data GameData) (game.InsightNote, error) {
	payload, err := json.Marshal(chatRequest{
		Model: l.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(data)},
		},
		MaxTokens: l.cfg.MaxTokens,
	})
	if err != nil {
		return game.InsightNote{}, fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequest("POST", l.cfg.BaseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return game.InsightNote{}, fmt.Errorf("creating chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+l.cfg.APIKey)

	start := time.Now()
	resp, err := l.client.Do(req)
	if err != nil {
		return game.InsightNote{}, fmt.Errorf("calling chat completions: %w", err)
	}
	defer resp.Body.Close()
	logger.RecordTiming("llm.generate", time.Since(start))

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return game.InsightNote{}, fmt.Errorf("decoding chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := "no error detail"
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return game.InsightNote{}, fmt.Errorf("chat completions returned status %d: %s", resp.StatusCode, msg)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return game.InsightNote{}, fmt.Errorf("chat completions returned no content")
	}

	return note(data, "llm", parsed.Choices[0].Message.Content), nil
}
