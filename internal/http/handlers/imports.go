package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"logisticshub/internal/domain"
	"logisticshub/internal/ingest"
	"logisticshub/internal/services"
)

const maxUploadBytes = 10 << 20

type commitTripsRequest struct {
	Candidates []services.TripCandidate `json:"candidates" binding:"required"`
}

type commitExpensesRequest struct {
	Candidates []services.ExpenseCandidate `json:"candidates" binding:"required"`
}

// GET /api/imports/formats?kind=trips|expenses
func ListImportFormats(c *gin.Context) {
	c.JSON(http.StatusOK, ingest.Formats(ingest.Kind(strings.TrimSpace(c.Query("kind")))))
}

// POST /api/imports/trips/preview (multipart: file, format, client_id)
func PreviewTripImport(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "file", Msg: "spreadsheet file is required"})
		return
	}
	clientID, err := strconv.ParseInt(strings.TrimSpace(c.PostForm("client_id")), 10, 64)
	if err != nil || clientID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "client_id", Msg: "required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	defer f.Close()

	preview, err := importService(c).PreviewTrips(c.Request.Context(), session(c), c.PostForm("format"), clientID, f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// POST /api/imports/trips/commit
func CommitTripImport(c *gin.Context) {
	var req commitTripsRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := importService(c).CommitTrips(c.Request.Context(), session(c), req.Candidates)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/imports/expenses/preview (multipart: file)
func PreviewExpenseImport(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "file", Msg: "spreadsheet file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	defer f.Close()

	preview, err := importService(c).PreviewExpenses(c.Request.Context(), session(c), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// POST /api/imports/expenses/commit
func CommitExpenseImport(c *gin.Context) {
	var req commitExpensesRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := importService(c).CommitExpenses(c.Request.Context(), session(c), req.Candidates)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
