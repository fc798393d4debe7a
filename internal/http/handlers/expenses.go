package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logisticshub/internal/services"
)

// GET /api/expenses?year=&month=
func ListExpenses(c *gin.Context) {
	period, err := periodFromQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out, err := expenseService(c).List(c.Request.Context(), period)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/expenses
func CreateExpense(c *gin.Context) {
	var in services.ExpenseInput
	if !BindJSONOrError(c, &in) {
		return
	}
	id, err := expenseService(c).Create(c.Request.Context(), session(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/expenses/:id
func UpdateExpense(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.ExpenseInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if err := expenseService(c).Update(c.Request.Context(), session(c), id, in); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/expenses/:id
func DeleteExpense(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := expenseService(c).Delete(c.Request.Context(), session(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
