package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/models"
	"go.uber.org/zap"
)

// ErrRecipeParse is returned for every failure to turn recipe text into a recipe
var ErrRecipeParse = errors.New("Failed to parse recipe text into JSON.")

const recipePrompt = `Extract the following details from the plain text recipe into a JSON object with exactly these keys:
1. "name": name of the recipe
2. "ingredients": list of objects with "name" and "quantity" keys
3. "instructions": step-by-step instructions as a single string
4. "taste": the taste of the dish
5. "cuisine_type": the cuisine type
6. "prep_time": preparation time in minutes, as a number

Answer with the JSON object only.

Plain Text Recipe:
%s

JSON Format:
`

// ParsedRecipe is the structured recipe returned by the language model
type ParsedRecipe struct {
	Name           string          `json:"name"`
	RawIngredients json.RawMessage `json:"ingredients"`
	Instructions   Instructions    `json:"instructions"`
	Taste          string          `json:"taste"`
	CuisineType    string          `json:"cuisine_type"`
	PrepTime       PrepTime        `json:"prep_time"`
}

// ParsedIngredient is one ingredient line of a parsed recipe
type ParsedIngredient struct {
	Name     string          `json:"name"`
	Quantity models.Quantity `json:"quantity"`
}

// UnmarshalJSON accepts an object or a bare string such as "2 eggs"
func (p *ParsedIngredient) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		p.Name = str
		return nil
	}

	type plain ParsedIngredient
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = ParsedIngredient(v)
	return nil
}

// Ingredients decodes the ingredient list. The boolean is false when the
// model did not answer with a list.
func (r *ParsedRecipe) Ingredients() ([]ParsedIngredient, bool) {
	raw := bytes.TrimSpace(r.RawIngredients)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var list []ParsedIngredient
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false
	}
	return list, true
}

// Instructions can be a single string or a list of steps
type Instructions string

func (i *Instructions) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*i = Instructions(strings.TrimSpace(str))
		return nil
	}

	var steps []string
	if err := json.Unmarshal(data, &steps); err == nil {
		*i = Instructions(strings.TrimSpace(strings.Join(steps, "\n")))
		return nil
	}
	return fmt.Errorf("instructions must be a string or a list of strings")
}

// PrepTime holds minutes and accepts numbers or strings like "30 minutes"
type PrepTime int

var leadingNumber = regexp.MustCompile(`\d+`)

func (p *PrepTime) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*p = PrepTime(int(num))
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if m := leadingNumber.FindString(str); m != "" {
			n, _ := strconv.Atoi(m)
			*p = PrepTime(n)
		} else {
			*p = 0
		}
		return nil
	}

	// Unknown shapes are dropped rather than failing the whole recipe
	*p = 0
	return nil
}

// LLMService converts recipe text through an OpenAI-compatible chat-completions endpoint
type LLMService struct {
	apiKey      string
	apiURL      string
	model       string
	maxTokens   int
	temperature float64
	client      *http.Client
	log         *zap.Logger
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg *config.Config, log *zap.Logger) *LLMService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LLMService{
		apiKey:      cfg.LLMAPIKey,
		apiURL:      cfg.LLMAPIURL,
		model:       cfg.LLMModel,
		maxTokens:   cfg.LLMMaxTokens,
		temperature: cfg.LLMTemperature,
		client:      &http.Client{Timeout: cfg.LLMTimeout},
		log:         log,
	}
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat-completions request
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// Response is the subset of a completions response the converter reads
type Response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Text string `json:"text"`
	} `json:"choices"`
}

// ParseRecipeText asks the model to structure the recipe text
func (s *LLMService) ParseRecipeText(ctx context.Context, text string) (*ParsedRecipe, error) {
	content, err := s.complete(ctx, fmt.Sprintf(recipePrompt, text))
	if err != nil {
		s.log.Error("error parsing recipe text", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRecipeParse, err)
	}

	raw, err := extractJSONObject(content)
	if err != nil {
		s.log.Error("error parsing recipe text", zap.Error(err), zap.String("content", content))
		return nil, fmt.Errorf("%w: %v", ErrRecipeParse, err)
	}

	var recipe ParsedRecipe
	if err := json.Unmarshal([]byte(raw), &recipe); err != nil {
		s.log.Error("error parsing recipe text", zap.Error(err), zap.String("content", content))
		return nil, fmt.Errorf("%w: %v", ErrRecipeParse, err)
	}

	return &recipe, nil
}

func (s *LLMService) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("LLM API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result Response
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	content := result.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		content = result.Choices[0].Text
	}
	if strings.TrimSpace(content) == "" {
		return "", errors.New("empty completion")
	}
	return content, nil
}

// extractJSONObject returns the outermost JSON object in s, ignoring
// markdown fences and any prose around it
func extractJSONObject(s string) (string, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end < start {
		return "", errors.New("no JSON object in completion")
	}
	return s[start : end+1], nil
}
