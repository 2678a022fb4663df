// internal/handlers/common.go
package handlers

import (
	"encoding/json"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/centremall/mall-backend/internal/utils"
)

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "authentication required")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.Unauthorized(c, "invalid session")
		return uuid.Nil, false
	}
	return userID, true
}

func isAdmin(c *gin.Context) bool {
	role, _ := utils.GetUserRoleFromContext(c)
	return role == "admin"
}

// bindMultipartOrJSON decodes the request either from a JSON body or from a
// multipart form carrying the payload in a "data" field next to image files.
// Returns the uploaded image headers, if any.
func bindMultipartOrJSON(c *gin.Context, dst interface{}) ([]*multipart.FileHeader, error) {
	contentType := c.ContentType()
	if contentType != "multipart/form-data" {
		return nil, c.ShouldBindJSON(dst)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	if values := form.Value["data"]; len(values) > 0 {
		if err := json.Unmarshal([]byte(values[0]), dst); err != nil {
			return nil, err
		}
	}

	return form.File["images"], nil
}
