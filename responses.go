package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"santunan/pkg/lifecycle"
)

func respondOK(c *gin.Context, message string, data any) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

func respondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": message, "data": data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondServiceError maps the lifecycle error taxonomy onto HTTP statuses.
// notFoundMsg keeps the original per-entity wording for 404s.
func respondServiceError(c *gin.Context, err error, notFoundMsg string) {
	var verr *lifecycle.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, verr.Msg)
	case errors.Is(err, lifecycle.ErrNotFound):
		respondError(c, http.StatusNotFound, notFoundMsg)
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		respondError(c, http.StatusInternalServerError, "Terjadi kesalahan server")
	}
}
