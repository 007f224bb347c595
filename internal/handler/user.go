package handler

import (
	"errors"
	"net/http"
	"strconv"

	"auth-service/internal/store"
	"auth-service/internal/util"

	"github.com/gin-gonic/gin"
)

// UserHandler serves account lookups.
type UserHandler struct {
	Store *store.UserStore
}

// NewUserHandler builds a UserHandler on top of the given store.
func NewUserHandler(s *store.UserStore) *UserHandler {
	return &UserHandler{Store: s}
}

// GetMe returns the public fields of the account named by the
// current_user_id query parameter. This is NOT an authenticated route:
// it trusts the caller-supplied id and is only a lookup-by-id.
func (h *UserHandler) GetMe(c *gin.Context) {
	idStr := c.Query("current_user_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "current_user_id must be a positive integer")
		return
	}

	user, err := h.Store.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "User not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to look up user")
		}
		return
	}

	c.JSON(http.StatusOK, util.NewUserResponse(user, "User information retrieved"))
}
