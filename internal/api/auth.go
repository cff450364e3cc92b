package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
	"go.uber.org/zap"
)

type AuthHandler struct {
	provider service.IdentityProvider
	profiles service.ProfileStore
	log      *zap.Logger
}

func NewAuthHandler(provider service.IdentityProvider, profiles service.ProfileStore, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{
		provider: provider,
		profiles: profiles,
		log:      log,
	}
}

// Signup registers a user with the identity provider and records the optional username
func (h *AuthHandler) Signup(c *gin.Context) {
	var req types.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	user, err := h.provider.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil || user == nil {
		h.log.Info("signup rejected", zap.Error(err))
		respondError(c, http.StatusBadRequest, errorMessage(err, "Signup failed"))
		return
	}

	if req.Username != "" {
		if err := h.profiles.UpdateUsername(c.Request.Context(), user.ID, req.Username); err != nil {
			h.log.Warn("failed to set username", zap.String("user_id", user.ID.String()), zap.Error(err))
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	c.JSON(http.StatusCreated, types.SignupResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
	})
}

// Login exchanges email and password for an access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	session, err := h.provider.SignInWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil || session == nil || session.AccessToken == "" {
		respondError(c, http.StatusBadRequest, errorMessage(err, "Login failed"))
		return
	}

	c.JSON(http.StatusOK, types.LoginResponse{
		Message: "Login successful",
		Token:   session.AccessToken,
	})
}
