package handler

import (
	"net/http"
	"strconv"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН КЛИЕНТЫ ============

func customerToDTO(c *ds.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

// GetCustomers получает список клиентов
// @Summary Получение списка клиентов
// @Description Возвращает список клиентов с поиском по имени или телефону
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param query query string false "Поиск по имени или телефону"
// @Success 200 {object} dto.CustomerListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/customers [get]
func (h *APIHandler) GetCustomers(c *gin.Context) {
	customers, err := h.Repository.GetCustomers(c.Query("query"))
	if err != nil {
		logrus.Error("Error getting customers: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения клиентов")
		return
	}

	dtoCustomers := make([]dto.CustomerResponse, len(customers))
	for i := range customers {
		dtoCustomers[i] = customerToDTO(&customers[i])
	}

	c.JSON(http.StatusOK, dto.CustomerListResponse{
		Customers: dtoCustomers,
		Total:     len(dtoCustomers),
	})
}

// GetCustomer получает одного клиента
// @Summary Получение клиента по ID
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID клиента"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/customers/{id} [get]
func (h *APIHandler) GetCustomer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID клиента")
		return
	}

	customer, err := h.Repository.GetCustomerByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Клиент не найден")
		return
	}

	c.JSON(http.StatusOK, customerToDTO(customer))
}

// CreateCustomer создает клиента
// @Summary Создание клиента
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCustomerRequest true "Данные клиента"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/customers [post]
func (h *APIHandler) CreateCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	customer, err := h.Repository.CreateCustomer(req.Name, req.Phone, req.Email)
	if err != nil {
		logrus.Error("Error creating customer: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания клиента")
		return
	}

	c.JSON(http.StatusCreated, customerToDTO(customer))
}

// UpdateCustomer обновляет клиента
// @Summary Обновление клиента
// @Description Частичное обновление: меняются только переданные поля
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID клиента"
// @Param request body dto.UpdateCustomerRequest true "Данные для обновления"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/customers/{id} [put]
func (h *APIHandler) UpdateCustomer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID клиента")
		return
	}

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	exists, err := h.Repository.CustomerExists(uint(id))
	if err != nil || !exists {
		h.errorResponse(c, http.StatusNotFound, "Клиент не найден")
		return
	}

	err = h.Repository.UpdateCustomer(uint(id), req.Name, req.Phone, req.Email)
	if err != nil {
		logrus.Error("Error updating customer: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления клиента")
		return
	}

	h.successResponse(c, http.StatusOK, "Клиент успешно обновлён", nil)
}

// DeleteCustomer удаляет клиента
// @Summary Удаление клиента
// @Description Удаление отклоняется, пока есть заказ-наряды клиента
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID клиента"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/customers/{id} [delete]
func (h *APIHandler) DeleteCustomer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID клиента")
		return
	}

	err = h.Repository.DeleteCustomer(uint(id))
	if err != nil {
		if err == repository.ErrHasDependentJobs {
			h.errorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}
