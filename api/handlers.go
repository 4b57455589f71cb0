package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sportsbase/roster/api/responses"
	"github.com/sportsbase/roster/common/apiutil"
	"github.com/sportsbase/roster/internal/records"
	"github.com/sportsbase/roster/pkg/errors"
	"github.com/sportsbase/roster/pkg/models"
	"github.com/sportsbase/roster/pkg/pagination"
)

// createTrainingCenter handles POST /training_centers/
func (s *Server) createTrainingCenter(c *gin.Context) {
	var req models.CreateTrainingCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, apiutil.TranslateBindingError(err))
		return
	}

	center, err := s.records.CreateTrainingCenter(c.Request.Context(), &req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	responses.Created(c, center.ID)
}

// createCategory handles POST /categories/
func (s *Server) createCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, apiutil.TranslateBindingError(err))
		return
	}

	category, err := s.records.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	responses.Created(c, category.ID)
}

// createAthlete handles POST /athletes/
func (s *Server) createAthlete(c *gin.Context) {
	var req models.CreateAthleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, apiutil.TranslateBindingError(err))
		return
	}

	athlete, err := s.records.CreateAthlete(c.Request.Context(), &req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	responses.Created(c, athlete.ID)
}

// listAthletes handles GET /athletes/
func (s *Server) listAthletes(c *gin.Context) {
	var filter records.AthleteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		s.writeError(c, apiutil.TranslateBindingError(err))
		return
	}
	var params pagination.LimitOffsetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		s.writeError(c, apiutil.TranslateBindingError(err))
		return
	}

	page, err := s.records.ListAthletes(c.Request.Context(), filter, params)
	if err != nil {
		s.writeError(c, err)
		return
	}
	responses.OK(c, page)
}

// getAthlete handles GET /athletes/:id
func (s *Server) getAthlete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		s.writeError(c, errors.Unprocessable.Explain("athlete id must be a positive integer"))
		return
	}

	athlete, err := s.records.GetAthlete(c.Request.Context(), uint(id))
	if err != nil {
		s.writeError(c, err)
		return
	}
	responses.OK(c, athlete)
}

// listTrainingCenters handles GET /training_centers/
func (s *Server) listTrainingCenters(c *gin.Context) {
	var params pagination.LimitOffsetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		s.writeError(c, apiutil.TranslateBindingError(err))
		return
	}

	page, err := s.records.ListTrainingCenters(c.Request.Context(), params)
	if err != nil {
		s.writeError(c, err)
		return
	}
	responses.OK(c, page)
}

// listCategories handles GET /categories/
func (s *Server) listCategories(c *gin.Context) {
	var params pagination.LimitOffsetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		s.writeError(c, apiutil.TranslateBindingError(err))
		return
	}

	page, err := s.records.ListCategories(c.Request.Context(), params)
	if err != nil {
		s.writeError(c, err)
		return
	}
	responses.OK(c, page)
}

// writeError maps service error kinds onto problem responses. Anything
// without a recognized kind, integrity failures included, falls through to a
// 500.
func (s *Server) writeError(c *gin.Context, err error) {
	var appErr *errors.Error
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(appErr, errors.Conflict):
			responses.Conflict(c, appErr.Message)
			return
		case errors.Is(appErr, errors.NotFound):
			responses.NotFound(c, appErr.Message)
			return
		case errors.Is(appErr, errors.Unprocessable), errors.Is(appErr, errors.Invalid):
			responses.UnprocessableEntity(c, appErr.Message, fieldErrors(appErr)...)
			return
		}
	}

	s.logger.Error("handler error", zap.Error(err))
	responses.InternalServerError(c, "internal server error")
}

// fieldErrors converts error field details to the problem body shape.
func fieldErrors(err *errors.Error) []errors.ValidationError {
	out := make([]errors.ValidationError, 0, len(err.Fields))
	for _, f := range err.Fields {
		out = append(out, errors.ValidationError{
			Field:   f.Field,
			Message: f.Message,
			Code:    f.Kind,
		})
	}
	return out
}
