package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/dailydiet/internal/server/models"
	"github.com/dmitrijs2005/dailydiet/internal/server/services"
	"github.com/gin-gonic/gin"
)

type createDietRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DateHour    string `json:"dateHour"`
}

type updateDietRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	DateHour    *string `json:"date_hour"`
	IsOnDiet    *bool   `json:"is_on_diet"`
}

type dietParams struct {
	ID string `json:"id" validate:"canonical_uuid"`
}

// dietID validates the :id path parameter, writing a 400 when it is not a
// canonical uuid.
func (s *Server) dietID(c *gin.Context) (string, bool) {
	p := dietParams{ID: c.Param("id")}
	if err := s.validate.Struct(p); err != nil {
		c.JSON(http.StatusBadRequest, issuesFromValidation(err))
		return "", false
	}
	return p.ID, true
}

func nonNil(list []*models.Diet) []*models.Diet {
	if list == nil {
		return []*models.Diet{}
	}
	return list
}

func (s *Server) listDiets(c *gin.Context) {
	list, err := s.diets.List(c.Request.Context(), sessionID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"diets": nonNil(list)})
}

func (s *Server) getDiet(c *gin.Context) {
	id, ok := s.dietID(c)
	if !ok {
		return
	}

	d, err := s.diets.Get(c.Request.Context(), sessionID(c), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"diet": []*models.Diet{d}})
}

func (s *Server) listDietsOnDiet(c *gin.Context) {
	s.listDietsByStatus(c, true)
}

func (s *Server) listDietsOffDiet(c *gin.Context) {
	s.listDietsByStatus(c, false)
}

// listDietsByStatus answers both status routes under the totalOnDiet key.
func (s *Server) listDietsByStatus(c *gin.Context, onDiet bool) {
	list, err := s.diets.ListByStatus(c.Request.Context(), sessionID(c), onDiet)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalOnDiet": nonNil(list)})
}

func (s *Server) countDiets(c *gin.Context) {
	n, err := s.diets.CountRegistered(c.Request.Context(), sessionID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalMeals": n})
}

func (s *Server) createDiet(c *gin.Context) {
	var req createDietRequest
	if issues := s.bind(c, createDietSchema, &req); issues != nil {
		c.JSON(http.StatusBadRequest, issues)
		return
	}

	d, err := s.diets.Create(c.Request.Context(), sessionID(c), services.NewDiet{
		Name:        req.Name,
		Description: req.Description,
		DateHour:    req.DateHour,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Debug(c.Request.Context(), "Diet created", "diet_id", d.ID)
	c.Status(http.StatusCreated)
}

func (s *Server) updateDiet(c *gin.Context) {
	var req updateDietRequest
	if issues := s.bind(c, updateDietSchema, &req); issues != nil {
		c.JSON(http.StatusBadRequest, issues)
		return
	}

	id, ok := s.dietID(c)
	if !ok {
		return
	}

	patch := models.DietPatch{
		Name:        req.Name,
		Description: req.Description,
		DateHour:    req.DateHour,
		IsOnDiet:    req.IsOnDiet,
	}

	d, err := s.diets.Update(c.Request.Context(), sessionID(c), id, patch)
	if err != nil {
		if errors.Is(err, services.ErrDietNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Diet not found"})
			return
		}
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"diet": d})
}

func (s *Server) deleteDiet(c *gin.Context) {
	id, ok := s.dietID(c)
	if !ok {
		return
	}

	if err := s.diets.Delete(c.Request.Context(), sessionID(c), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
