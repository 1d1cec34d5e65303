package handler

import (
	"net/http"
	"time"

	"backend/internal/app/dto"
	"backend/internal/app/stats"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН СТАТИСТИКА ============

// GetDailyStats получает статистику за день
// @Summary Статистика за день
// @Description Итоги дня: сумма заказов, оплачено, количество, недоплаты. Без параметра date - за сегодня
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Param date query string false "Дата (формат: 2006-01-02)"
// @Success 200 {object} dto.DailyStatsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/stats/daily [get]
func (h *APIHandler) GetDailyStats(c *gin.Context) {
	date := time.Now()
	if s := c.Query("date"); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверный формат даты, ожидается YYYY-MM-DD")
			return
		}
		date = parsed
	}

	result, err := h.Aggregator.DailyStats(date)
	if err != nil {
		logrus.Error("Error calculating daily stats: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка расчёта статистики")
		return
	}

	c.JSON(http.StatusOK, dto.DailyStatsResponse{
		Date:            date.Format("2006-01-02"),
		TotalAmount:     result.TotalAmount.Round(2),
		TotalPaid:       result.TotalPaid.Round(2),
		TotalJobs:       result.TotalJobs,
		PendingPayments: result.PendingPayments.Round(2),
	})
}

// GetPaymentMethodStats получает статистику по способам оплаты
// @Summary Статистика по способам оплаты
// @Description Количество и сумма оплаченных заказов по каждому способу; способы без оплат идут с нулями
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PaymentMethodStatResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/stats/payment-methods [get]
func (h *APIHandler) GetPaymentMethodStats(c *gin.Context) {
	result, err := h.Aggregator.PaymentMethodStats()
	if err != nil {
		logrus.Error("Error calculating payment method stats: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка расчёта статистики")
		return
	}

	response := make([]dto.PaymentMethodStatResponse, len(result))
	for i, stat := range result {
		response[i] = dto.PaymentMethodStatResponse{
			Method: string(stat.Method),
			Count:  stat.Count,
			Total:  stat.Total.Round(2),
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetNetProfit получает чистую прибыль за период
// @Summary Чистая прибыль за период
// @Description Выручка минус расходы. Без параметров - за текущий месяц. Прибыль может быть отрицательной
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Начало периода (формат: 2006-01-02)"
// @Param endDate query string false "Конец периода (формат: 2006-01-02)"
// @Success 200 {object} dto.NetProfitResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/stats/net-profit [get]
func (h *APIHandler) GetNetProfit(c *gin.Context) {
	// По умолчанию берём текущий календарный месяц
	now := time.Now()
	startDate := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endDate := startDate.AddDate(0, 1, -1)

	if s := c.Query("startDate"); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверный формат startDate, ожидается YYYY-MM-DD")
			return
		}
		startDate = parsed
	}
	if s := c.Query("endDate"); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверный формат endDate, ожидается YYYY-MM-DD")
			return
		}
		endDate = parsed
	}
	if endDate.Before(startDate) {
		h.errorResponse(c, http.StatusBadRequest, "endDate не может быть раньше startDate")
		return
	}

	result, err := h.Aggregator.NetProfit(stats.DayStart(startDate), stats.DayEnd(endDate))
	if err != nil {
		logrus.Error("Error calculating net profit: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка расчёта прибыли")
		return
	}

	c.JSON(http.StatusOK, dto.NetProfitResponse{
		StartDate:     startDate.Format("2006-01-02"),
		EndDate:       endDate.Format("2006-01-02"),
		TotalRevenue:  result.TotalRevenue.Round(2),
		TotalExpenses: result.TotalExpenses.Round(2),
		NetProfit:     result.NetProfit.Round(2),
	})
}

// GetPopularServices получает рейтинг услуг
// @Summary Популярные услуги
// @Description Услуги по убыванию числа использований в заказ-нарядах
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PopularServiceResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/stats/popular-services [get]
func (h *APIHandler) GetPopularServices(c *gin.Context) {
	result, err := h.Aggregator.PopularServices()
	if err != nil {
		logrus.Error("Error calculating popular services: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка расчёта статистики")
		return
	}

	response := make([]dto.PopularServiceResponse, len(result))
	for i, svc := range result {
		response[i] = dto.PopularServiceResponse{
			Name:  svc.Name,
			Count: svc.Count,
		}
	}

	c.JSON(http.StatusOK, response)
}
