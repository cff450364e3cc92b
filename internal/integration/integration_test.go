package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/router"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

const completion = `Sure! Here is the recipe:
` + "```json" + `
{
  "name": "Garlic Butter Pasta",
  "ingredients": [
    {"name": "spaghetti", "quantity": "200g"},
    {"name": "garlic", "quantity": 3},
    {"name": "butter", "quantity": "2 tbsp"}
  ],
  "instructions": ["Boil the pasta.", "Melt butter with garlic.", "Toss together."],
  "taste": "savory",
  "cuisine_type": "Italian",
  "prep_time": "15 minutes"
}
` + "```"

type app struct {
	router *gin.Engine
	db     *gorm.DB
	llm    *httptest.Server
}

func setupApp(t *testing.T, llmHandler http.HandlerFunc) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLite(t)
	llm := httptest.NewServer(llmHandler)
	t.Cleanup(llm.Close)

	cfg := &config.Config{
		LLMAPIKey:      "test-key",
		LLMAPIURL:      llm.URL,
		LLMModel:       "test-model",
		LLMMaxTokens:   1024,
		LLMTemperature: 0.7,
		LLMTimeout:     5 * time.Second,
	}
	log := zaptest.NewLogger(t)

	r := router.SetupRouter(router.Deps{
		Identity:       service.NewAuthService(db, "integration-secret"),
		Profiles:       service.NewProfileService(db),
		Ingredients:    service.NewIngredientService(db),
		Recipes:        service.NewRecipeService(db),
		Parser:         service.NewLLMService(cfg, log),
		AllowedOrigins: []string{"http://localhost:5173"},
		Log:            log,
	})
	return &app{router: r, db: db, llm: llm}
}

func (a *app) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func completionHandler(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []interface{}{
				map[string]interface{}{"message": map[string]interface{}{"content": content}},
			},
		})
	}
}

func TestRecipeFlow(t *testing.T) {
	a := setupApp(t, completionHandler(completion))

	// signup with username
	w := a.do(t, http.MethodPost, "/signup", map[string]string{
		"email": "cook@example.com", "password": "password123", "username": "chef",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var signup struct {
		Message string `json:"message"`
		UserID  string `json:"user_id"`
	}
	decode(t, w, &signup)
	assert.Equal(t, "User registered successfully", signup.Message)

	var profile models.Profile
	require.NoError(t, a.db.First(&profile, "id = ?", signup.UserID).Error)
	require.NotNil(t, profile.Username)
	assert.Equal(t, "chef", *profile.Username)

	// login
	w = a.do(t, http.MethodPost, "/login", map[string]string{"email": "cook@example.com", "password": "password123"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	decode(t, w, &login)
	assert.Equal(t, "Login successful", login.Message)
	require.NotEmpty(t, login.Token)

	// pantry
	w = a.do(t, http.MethodPost, "/ingredients/add", map[string]interface{}{"name": "flour", "quantity": 2, "unit": "cups"}, login.Token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/ingredients", nil, login.Token)
	require.Equal(t, http.StatusOK, w.Code)
	var pantry []models.Ingredient
	decode(t, w, &pantry)
	require.Len(t, pantry, 1)
	assert.Equal(t, models.Quantity("2"), pantry[0].Quantity)

	// daily recipe before any import
	w = a.do(t, http.MethodGet, "/recipes/daily/"+signup.UserID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// import a recipe
	w = a.do(t, http.MethodPost, "/recipes/add", map[string]string{"text": "Garlic butter pasta for two..."}, login.Token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var added struct {
		Message  string `json:"message"`
		RecipeID string `json:"recipe_id"`
	}
	decode(t, w, &added)
	assert.Equal(t, "Recipe added successfully", added.Message)

	var lines []models.RecipeIngredient
	require.NoError(t, a.db.Where("recipe_id = ?", added.RecipeID).Find(&lines).Error)
	assert.Len(t, lines, 3)

	// public listing and daily recipe
	w = a.do(t, http.MethodGet, "/recipes", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var recipes []models.Recipe
	decode(t, w, &recipes)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Garlic Butter Pasta", recipes[0].Name)
	assert.Equal(t, 15, recipes[0].PrepTime)

	w = a.do(t, http.MethodGet, "/recipes/daily/"+signup.UserID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var daily models.Recipe
	decode(t, w, &daily)
	assert.Equal(t, added.RecipeID, daily.ID.String())
	assert.Equal(t, "Italian", daily.CuisineType)
}

func TestRecipeImportConverterFailure(t *testing.T) {
	a := setupApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"overloaded"}`))
	})

	w := a.do(t, http.MethodPost, "/signup", map[string]string{"email": "a@example.com", "password": "pw"}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	w = a.do(t, http.MethodPost, "/login", map[string]string{"email": "a@example.com", "password": "pw"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	decode(t, w, &login)

	w = a.do(t, http.MethodPost, "/recipes/add", map[string]string{"text": "anything"}, login.Token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to parse recipe text into JSON."}`, w.Body.String())

	var count int64
	require.NoError(t, a.db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAuthFailures(t *testing.T) {
	a := setupApp(t, completionHandler(completion))

	w := a.do(t, http.MethodPost, "/signup", map[string]string{"email": "dup@example.com", "password": "pw"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = a.do(t, http.MethodPost, "/signup", map[string]string{"email": "dup@example.com", "password": "pw"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"User already registered"}`, w.Body.String())

	w = a.do(t, http.MethodPost, "/login", map[string]string{"email": "dup@example.com", "password": "nope"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid login credentials"}`, w.Body.String())

	w = a.do(t, http.MethodPost, "/ingredients", nil, "forged.token.value")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired token"}`, w.Body.String())

	w = a.do(t, http.MethodPatch, "/unknown", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", w.Body.String())
}
