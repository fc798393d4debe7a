package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"logisticshub/internal/domain"
	"logisticshub/internal/http/middleware"
)

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// pathID parses a positive numeric path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_id", "invalid "+name, nil)
		return 0, false
	}
	return id, true
}

func queryInt64(c *gin.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, domain.ValidationError{Field: name, Msg: "must be a non-negative integer"}
	}
	return v, nil
}

// periodFromQuery reads ?year=&month=. Both empty means all data.
func periodFromQuery(c *gin.Context) (domain.Period, error) {
	year, err := queryInt64(c, "year")
	if err != nil {
		return domain.Period{}, err
	}
	month, err := queryInt64(c, "month")
	if err != nil {
		return domain.Period{}, err
	}
	p := domain.Period{Year: int(year), Month: int(month)}
	return p, p.Validate()
}

func session(c *gin.Context) domain.Session {
	s, _ := middleware.CurrentSession(c)
	return s
}

func sendFile(c *gin.Context, contentType, disposition, filename string, data []byte) {
	c.Header("Content-Disposition", disposition+`; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
