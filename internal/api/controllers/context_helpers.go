package controllers

import (
	"net/http"

	"fablink/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID reads the authenticated user set by the JWT middleware.
// A false return means the error response has already been written.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return id, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
