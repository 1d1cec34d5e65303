package handler

import (
	"net/http"
	"strconv"
	"time"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"
	"backend/internal/app/stats"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН РАСХОДЫ ============

func expenseToDTO(e *ds.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:       e.ID,
		Name:     e.Name,
		Amount:   e.Amount.Round(2),
		Category: string(e.Category),
		Date:     e.Date,
		Notes:    e.Notes,
	}
}

// GetExpenses получает список расходов
// @Summary Получение списка расходов
// @Description Возвращает расходы с фильтрами по категории и периоду
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Param category query string false "Фильтр по категории"
// @Param date_from query string false "Дата начала (формат: 2006-01-02)"
// @Param date_to query string false "Дата окончания (формат: 2006-01-02)"
// @Success 200 {object} dto.ExpenseListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/expenses [get]
func (h *APIHandler) GetExpenses(c *gin.Context) {
	var filter repository.ExpenseFilter

	if category := c.Query("category"); category != "" {
		if !ds.ExpenseCategory(category).Valid() {
			h.errorResponse(c, http.StatusBadRequest, "Неверная категория расхода")
			return
		}
		filter.Category = ds.ExpenseCategory(category)
	}
	if s := c.Query("date_from"); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверная дата date_from")
			return
		}
		from := stats.DayStart(parsed)
		filter.DateFrom = &from
	}
	if s := c.Query("date_to"); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверная дата date_to")
			return
		}
		to := stats.DayEnd(parsed)
		filter.DateTo = &to
	}

	expenses, err := h.Repository.GetExpenses(filter)
	if err != nil {
		logrus.Error("Error getting expenses: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения расходов")
		return
	}

	dtoExpenses := make([]dto.ExpenseResponse, len(expenses))
	for i := range expenses {
		dtoExpenses[i] = expenseToDTO(&expenses[i])
	}

	c.JSON(http.StatusOK, dto.ExpenseListResponse{
		Expenses: dtoExpenses,
		Total:    len(dtoExpenses),
	})
}

// GetExpense получает расход по ID
// @Summary Получение расхода по ID
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID расхода"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/expenses/{id} [get]
func (h *APIHandler) GetExpense(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID расхода")
		return
	}

	expense, err := h.Repository.GetExpenseByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Расход не найден")
		return
	}

	c.JSON(http.StatusOK, expenseToDTO(expense))
}

// CreateExpense создает расход
// @Summary Создание расхода
// @Tags Expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateExpenseRequest true "Данные расхода"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/expenses [post]
func (h *APIHandler) CreateExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	if req.Amount.IsNegative() {
		h.errorResponse(c, http.StatusBadRequest, "Сумма расхода не может быть отрицательной")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат даты, ожидается YYYY-MM-DD")
		return
	}

	expense, err := h.Repository.CreateExpense(req.Name, req.Amount,
		ds.ExpenseCategory(req.Category), date, req.Notes)
	if err != nil {
		logrus.Error("Error creating expense: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания расхода")
		return
	}

	c.JSON(http.StatusCreated, expenseToDTO(expense))
}

// UpdateExpense обновляет расход
// @Summary Обновление расхода
// @Tags Expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID расхода"
// @Param request body dto.UpdateExpenseRequest true "Данные для обновления"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/expenses/{id} [put]
func (h *APIHandler) UpdateExpense(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID расхода")
		return
	}

	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	if _, err := h.Repository.GetExpenseByID(uint(id)); err != nil {
		h.errorResponse(c, http.StatusNotFound, "Расход не найден")
		return
	}

	if req.Amount != nil && req.Amount.IsNegative() {
		h.errorResponse(c, http.StatusBadRequest, "Сумма расхода не может быть отрицательной")
		return
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := time.ParseInLocation("2006-01-02", *req.Date, time.Local)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверный формат даты, ожидается YYYY-MM-DD")
			return
		}
		date = &parsed
	}

	var category *ds.ExpenseCategory
	if req.Category != nil {
		cat := ds.ExpenseCategory(*req.Category)
		category = &cat
	}

	err = h.Repository.UpdateExpense(uint(id), req.Name, req.Amount, category, date, req.Notes)
	if err != nil {
		logrus.Error("Error updating expense: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления расхода")
		return
	}

	h.successResponse(c, http.StatusOK, "Расход успешно обновлён", nil)
}

// DeleteExpense удаляет расход
// @Summary Удаление расхода
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID расхода"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/expenses/{id} [delete]
func (h *APIHandler) DeleteExpense(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID расхода")
		return
	}

	if err := h.Repository.DeleteExpense(uint(id)); err != nil {
		h.errorResponse(c, http.StatusNotFound, "Расход не найден")
		return
	}

	c.Status(http.StatusNoContent)
}
