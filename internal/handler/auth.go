package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"auth-service/internal/store"
	"auth-service/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the registration and login endpoints.
type AuthHandler struct {
	Store      *store.UserStore
	BcryptCost int
}

// NewAuthHandler builds an AuthHandler on top of the given store.
func NewAuthHandler(s *store.UserStore, bcryptCost int) *AuthHandler {
	return &AuthHandler{Store: s, BcryptCost: bcryptCost}
}

type registerReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// usernames: 3-50 chars, letters, digits, underscore, hyphen
var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_-]{3,50}$`)

// Register creates a new account from a username/email/password triple.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if !usernameRe.MatchString(req.Username) {
		util.Error(c, http.StatusBadRequest, "Username must be 3-50 characters of letters, numbers, underscores, and hyphens")
		return
	}
	if len(req.Password) < 6 || len(req.Password) > 100 {
		util.Error(c, http.StatusBadRequest, "Password must be between 6 and 100 characters")
		return
	}

	hash, err := util.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to process password")
		return
	}

	user, err := h.Store.Create(c.Request.Context(), req.Username, req.Email, hash)
	if err != nil {
		var conflict *store.ConflictError
		if errors.As(err, &conflict) {
			switch conflict.Field {
			case "username":
				util.Error(c, http.StatusBadRequest, "Username already registered")
			default:
				util.Error(c, http.StatusBadRequest, "Email already registered")
			}
			return
		}
		util.Error(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, util.NewUserResponse(user, "User registered successfully"))
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies a username/password pair. Every failure mode returns
// the same 401 body so the response never reveals whether the account
// exists.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	user, err := h.Store.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			util.Error(c, http.StatusUnauthorized, "Incorrect username or password")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to look up user")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    util.NewUserResponse(user, ""),
	})
}
