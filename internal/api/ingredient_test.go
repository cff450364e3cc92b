package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/mocks"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testToken = "good-token"

func authedProvider(user *types.User) *mocks.MockIdentityProvider {
	provider := new(mocks.MockIdentityProvider)
	provider.On("GetUser", mock.Anything, testToken).Return(user, nil)
	return provider
}

func setupIngredientRouter(provider *mocks.MockIdentityProvider, store *mocks.MockIngredientStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewIngredientHandler(store, nil)
	router := gin.New()
	router.POST("/ingredients", middleware.RequireUser(provider), h.ListIngredients)
	router.POST("/ingredients/add", middleware.RequireUser(provider), h.AddIngredient)
	return router
}

func TestListIngredients(t *testing.T) {
	user := &types.User{ID: uuid.New()}

	t.Run("requires a token", func(t *testing.T) {
		store := new(mocks.MockIngredientStore)
		w := doJSON(setupIngredientRouter(new(mocks.MockIdentityProvider), store), http.MethodPost, "/ingredients", "", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
		store.AssertNotCalled(t, "ListIngredients", mock.Anything, mock.Anything)
	})

	t.Run("returns only the user's ingredients", func(t *testing.T) {
		store := new(mocks.MockIngredientStore)
		store.On("ListIngredients", mock.Anything, user.ID).Return([]models.Ingredient{
			{ID: uuid.New(), Name: "flour", Quantity: "2", Unit: "cups", UserID: user.ID},
		}, nil)

		w := doJSON(setupIngredientRouter(authedProvider(user), store), http.MethodPost, "/ingredients", "", testToken)

		require.Equal(t, http.StatusOK, w.Code)
		var got []models.Ingredient
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "flour", got[0].Name)
		assert.Equal(t, user.ID, got[0].UserID)
		store.AssertExpectations(t)
	})

	t.Run("empty pantry is an empty list", func(t *testing.T) {
		store := new(mocks.MockIngredientStore)
		store.On("ListIngredients", mock.Anything, user.ID).Return(nil, nil)

		w := doJSON(setupIngredientRouter(authedProvider(user), store), http.MethodPost, "/ingredients", "", testToken)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		store := new(mocks.MockIngredientStore)
		store.On("ListIngredients", mock.Anything, user.ID).Return(nil, errors.New("connection refused"))

		w := doJSON(setupIngredientRouter(authedProvider(user), store), http.MethodPost, "/ingredients", "", testToken)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"connection refused"}`, w.Body.String())
	})
}

func TestAddIngredient(t *testing.T) {
	user := &types.User{ID: uuid.New()}
	invalid := `{"error":"Invalid input. Name, quantity, and unit are required."}`

	tests := []struct {
		name      string
		body      string
		setupMock func(*mocks.MockIngredientStore)
		wantCode  int
		wantBody  string
	}{
		{name: "missing unit", body: `{"name":"flour","quantity":"2"}`, wantCode: http.StatusBadRequest, wantBody: invalid},
		{name: "missing quantity", body: `{"name":"flour","unit":"cups"}`, wantCode: http.StatusBadRequest, wantBody: invalid},
		{name: "empty body", body: ``, wantCode: http.StatusBadRequest, wantBody: invalid},
		{
			name: "store failure",
			body: `{"name":"flour","quantity":"2","unit":"cups"}`,
			setupMock: func(s *mocks.MockIngredientStore) {
				s.On("CreateIngredient", mock.Anything, mock.Anything).Return(errors.New("insert failed"))
			},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"insert failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.MockIngredientStore)
			if tt.setupMock != nil {
				tt.setupMock(store)
			}

			w := doJSON(setupIngredientRouter(authedProvider(user), store), http.MethodPost, "/ingredients/add", tt.body, testToken)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			store.AssertExpectations(t)
		})
	}

	t.Run("success with numeric quantity", func(t *testing.T) {
		id := uuid.New()
		store := new(mocks.MockIngredientStore)
		store.On("CreateIngredient", mock.Anything, mock.MatchedBy(func(i *models.Ingredient) bool {
			return i.Name == "flour" && i.Quantity == "2" && i.Unit == "cups" && i.UserID == user.ID
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Ingredient).ID = id
		}).Return(nil)

		w := doJSON(setupIngredientRouter(authedProvider(user), store), http.MethodPost, "/ingredients/add",
			`{"name":"flour","quantity":2,"unit":"cups"}`, testToken)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"message":"Ingredient added successfully","ingredient_id":"`+id.String()+`"}`, w.Body.String())
		store.AssertExpectations(t)
	})

	t.Run("invalid token", func(t *testing.T) {
		provider := new(mocks.MockIdentityProvider)
		provider.On("GetUser", mock.Anything, "stale").Return(nil, errors.New("expired"))
		store := new(mocks.MockIngredientStore)

		w := doJSON(setupIngredientRouter(provider, store), http.MethodPost, "/ingredients/add",
			`{"name":"flour","quantity":"2","unit":"cups"}`, "stale")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Invalid or expired token"}`, w.Body.String())
		store.AssertNotCalled(t, "CreateIngredient", mock.Anything, mock.Anything)
	})
}
