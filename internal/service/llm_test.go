package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestLLMService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		LLMAPIKey:      "test-api-key",
		LLMAPIURL:      server.URL,
		LLMModel:       "test-model",
		LLMMaxTokens:   512,
		LLMTemperature: 0.7,
		LLMTimeout:     5 * time.Second,
	}
	return NewLLMService(cfg, zaptest.NewLogger(t))
}

func chatResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []interface{}{
			map[string]interface{}{
				"message": map[string]interface{}{"role": "assistant", "content": content},
			},
		},
	}
}

func TestParseRecipeText(t *testing.T) {
	var got Request
	svc := newTestLLMService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		content := "```json\n" + `{
			"name": "Pancakes",
			"ingredients": [{"name": "flour", "quantity": "200g"}, {"name": "eggs", "quantity": 2}],
			"instructions": ["Mix.", "Fry."],
			"taste": "sweet",
			"cuisine_type": "American",
			"prep_time": "20 minutes"
		}` + "\n```"
		_ = json.NewEncoder(w).Encode(chatResponse(content))
	})

	recipe, err := svc.ParseRecipeText(context.Background(), "Pancakes: mix flour and eggs, fry.")
	require.NoError(t, err)

	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, 512, got.MaxTokens)
	assert.InDelta(t, 0.7, got.Temperature, 0.0001)
	require.Len(t, got.Messages, 1)
	assert.Contains(t, got.Messages[0].Content, "Pancakes: mix flour and eggs, fry.")

	assert.Equal(t, "Pancakes", recipe.Name)
	assert.Equal(t, Instructions("Mix.\nFry."), recipe.Instructions)
	assert.Equal(t, "sweet", recipe.Taste)
	assert.Equal(t, "American", recipe.CuisineType)
	assert.Equal(t, PrepTime(20), recipe.PrepTime)

	ingredients, ok := recipe.Ingredients()
	require.True(t, ok)
	require.Len(t, ingredients, 2)
	assert.Equal(t, "flour", ingredients[0].Name)
	assert.Equal(t, models.Quantity("200g"), ingredients[0].Quantity)
	assert.Equal(t, models.Quantity("2"), ingredients[1].Quantity)
}

func TestParseRecipeText_LegacyTextChoice(t *testing.T) {
	svc := newTestLLMService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"text":" {\"name\":\"Toast\",\"ingredients\":[],\"instructions\":\"Toast it.\",\"prep_time\":5} "}]}`))
	})

	recipe, err := svc.ParseRecipeText(context.Background(), "toast")
	require.NoError(t, err)
	assert.Equal(t, "Toast", recipe.Name)
	assert.Equal(t, PrepTime(5), recipe.PrepTime)

	ingredients, ok := recipe.Ingredients()
	assert.True(t, ok)
	assert.Empty(t, ingredients)
}

func TestParseRecipeText_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"bad key"}`))
			},
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"choices":[]}`))
			},
		},
		{
			name: "prose without JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(chatResponse("I cannot help with that."))
			},
		},
		{
			name: "broken JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(chatResponse(`{"name": "x", "ingredients": [}`))
			},
		},
		{
			name: "response is not JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>gateway</html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestLLMService(t, tt.handler)
			recipe, err := svc.ParseRecipeText(context.Background(), "anything")
			assert.Nil(t, recipe)
			assert.ErrorIs(t, err, ErrRecipeParse)
		})
	}
}

func TestParsedRecipe_Ingredients(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantOK  bool
		wantLen int
	}{
		{"objects", `[{"name":"a","quantity":"1"}]`, true, 1},
		{"strings", `["2 eggs","salt"]`, true, 2},
		{"empty list", `[]`, true, 0},
		{"object", `{"name":"a"}`, false, 0},
		{"string", `"flour, eggs"`, false, 0},
		{"missing", ``, false, 0},
		{"null", `null`, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ParsedRecipe{RawIngredients: json.RawMessage(tt.raw)}
			list, ok := r.Ingredients()
			assert.Equal(t, tt.wantOK, ok)
			assert.Len(t, list, tt.wantLen)
		})
	}
}

func TestPrepTime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want PrepTime
	}{
		{`30`, 30},
		{`12.5`, 12},
		{`"45 minutes"`, 45},
		{`"about an hour"`, 0},
		{`null`, 0},
		{`{"minutes":10}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var p PrepTime
			require.NoError(t, json.Unmarshal([]byte(tt.in), &p))
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestInstructions_UnmarshalJSON(t *testing.T) {
	var i Instructions
	require.NoError(t, json.Unmarshal([]byte(`" Boil water. "`), &i))
	assert.Equal(t, Instructions("Boil water."), i)

	require.NoError(t, json.Unmarshal([]byte(`["Boil water.","Add pasta."]`), &i))
	assert.Equal(t, Instructions("Boil water.\nAdd pasta."), i)

	assert.Error(t, json.Unmarshal([]byte(`42`), &i))
}

func TestExtractJSONObject(t *testing.T) {
	got, err := extractJSONObject("Here you go:\n```json\n{\"a\":{\"b\":1}}\n```")
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"b":1}}`, got)

	_, err = extractJSONObject("nothing here")
	assert.Error(t, err)
}
