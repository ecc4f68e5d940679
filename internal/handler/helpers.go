package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/examgen/examgen-backend/internal/middleware"
	"github.com/examgen/examgen-backend/internal/response"
)

// paramID parses a positive integer path parameter, writing a 400 on failure.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// failStore maps repository errors onto HTTP responses.
func failStore(c *gin.Context, err error) {
	if errors.Is(err, pgx.ErrNoRows) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		case "23503": // foreign_key_violation
			if c.Request.Method == http.MethodPost {
				response.Fail(c, http.StatusBadRequest, response.ErrInvalidReference)
			} else {
				response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			}
			return
		}
	}

	_ = c.Error(err)
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}

// failValidation writes a 400 with field-level details.
func failValidation(c *gin.Context, fields map[string]string) {
	response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
}

// currentUserID returns the authenticated user's ID, writing a 401 when absent.
func currentUserID(c *gin.Context) (int, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return 0, false
	}
	return claims.UserID, true
}
