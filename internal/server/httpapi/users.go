package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

type createUserRequest struct {
	Name     string  `json:"name" validate:"min=1"`
	Password *string `json:"password"`
}

func (s *Server) createUser(c *gin.Context) {
	var req createUserRequest
	if issues := s.bind(c, createUserSchema, &req); issues != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": issues})
		return
	}

	sid, err := c.Cookie(common.SessionCookieName)
	if err != nil || sid == "" {
		sid = uuid.NewString()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(common.SessionCookieName, sid, int(common.SessionCookieMaxAge.Seconds()), "/", "", s.cookieSecure, true)
	}

	u, err := s.users.Register(c.Request.Context(), sid, req.Name, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "user_id", u.ID)
	c.Status(http.StatusCreated)
}

func (s *Server) listUsers(c *gin.Context) {
	list, err := s.users.ListBySession(c.Request.Context(), sessionID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if list == nil {
		list = []*models.User{}
	}
	c.JSON(http.StatusOK, list)
}

// bind checks the request body against sc, decodes it into dst and runs the
// struct validations. It returns nil when the body is acceptable.
func (s *Server) bind(c *gin.Context, sc schema, dst any) []Issue {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return []Issue{{Code: codeTooBig, Path: []string{}, Message: fmt.Sprintf("Body must not exceed %d bytes", maxBodyBytes)}}
		}
		return []Issue{{Code: codeInvalidType, Expected: jsonObject, Path: []string{}, Message: "Unreadable body"}}
	}
	body = sc.normalize(body)

	if issues := sc.check(body); len(issues) > 0 {
		return issues
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return []Issue{{Code: codeInvalidType, Expected: jsonObject, Path: []string{}, Message: "Invalid JSON body"}}
	}

	if err := s.validate.Struct(dst); err != nil {
		return issuesFromValidation(err)
	}
	return nil
}
