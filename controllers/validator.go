package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/KingGimer44/VideoJuego/common/errors"
	"github.com/KingGimer44/VideoJuego/models"
	"github.com/KingGimer44/VideoJuego/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	msgInvalidBody   = "El cuerpo de la solicitud debe ser un objeto JSON"
	msgInvalidDate   = "La fecha de lanzamiento debe ser una fecha ISO (AAAA-MM-DD)"
	msgInvalidRating = "La calificación debe estar entre 0 y 5"
)

// RequestValidator handles all input validation
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("platforms", func(fl validator.FieldLevel) bool {
		p, ok := fl.Field().Interface().(models.Platforms)
		return ok && p.RoundTrips()
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return isISODate(fl.Field().String())
	})
	return &RequestValidator{validate: v}
}

// isISODate accepts a calendar date or a full RFC 3339 timestamp.
func isISODate(s string) bool {
	if _, err := time.Parse(time.DateOnly, s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

// BindJSON decodes the body into dst. Anything but a JSON object is rejected.
func (rv *RequestValidator) BindJSON(c *gin.Context, dst any) *apperrors.Error {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Validation(msgInvalidBody)
		}
		return apperrors.New(http.StatusBadRequest, msgInvalidBody, err)
	}
	return nil
}

// ValidateGame checks a create or update payload.
func (rv *RequestValidator) ValidateGame(req *models.GameRequest) *apperrors.Error {
	err := rv.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Validation(services.MsgGameFieldsReq)
	}

	// Missing fields win over format problems.
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "min":
			return apperrors.Validation(services.MsgGameFieldsReq)
		case "gt":
			if fe.Field() == "Price" || fe.Field() == "Rating" {
				return apperrors.Validation(services.MsgGameFieldsReq)
			}
		}
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "platforms":
		return apperrors.Validation(services.MsgInvalidPlatform)
	case "isodate":
		return apperrors.Validation(msgInvalidDate)
	case "lte":
		return apperrors.Validation(msgInvalidRating)
	default:
		return apperrors.Validation(fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
}

func (rv *RequestValidator) ValidateRegister(req *models.RegisterRequest) *apperrors.Error {
	if err := rv.validate.Struct(req); err != nil {
		return apperrors.Validation(services.MsgRegisterFieldsReq)
	}
	return nil
}

func (rv *RequestValidator) ValidateLogin(req *models.LoginRequest) *apperrors.Error {
	if err := rv.validate.Struct(req); err != nil {
		return apperrors.Validation(services.MsgLoginFieldsReq)
	}
	return nil
}

// ParseListQuery reads search, genre and sort. Unknown sort values fall
// back to title order downstream, so nothing here can fail.
func (rv *RequestValidator) ParseListQuery(c *gin.Context) models.ListGamesQuery {
	return models.ListGamesQuery{
		Search: strings.TrimSpace(c.Query("search")),
		Genre:  strings.TrimSpace(c.Query("genre")),
		Sort:   strings.ToLower(strings.TrimSpace(c.Query("sort"))),
	}
}
