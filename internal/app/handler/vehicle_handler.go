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

// ============ ДОМЕН АВТОМОБИЛИ ============

func vehicleToDTO(v *ds.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ID:           v.ID,
		Plate:        v.Plate,
		Brand:        v.Brand,
		Model:        v.Model,
		Color:        v.Color,
		CustomerID:   v.CustomerID,
		CustomerName: v.Customer.Name,
		CreatedAt:    v.CreatedAt,
	}
}

// GetVehicles получает список автомобилей
// @Summary Получение списка автомобилей
// @Description Возвращает автомобили с фильтром по клиенту и поиском по номеру/марке
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param customer_id query int false "Фильтр по клиенту"
// @Param query query string false "Поиск по номеру или марке"
// @Success 200 {object} dto.VehicleListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/vehicles [get]
func (h *APIHandler) GetVehicles(c *gin.Context) {
	var customerID uint
	if s := c.Query("customer_id"); s != "" {
		parsed, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверный ID клиента")
			return
		}
		customerID = uint(parsed)
	}

	vehicles, err := h.Repository.GetVehicles(customerID, c.Query("query"))
	if err != nil {
		logrus.Error("Error getting vehicles: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения автомобилей")
		return
	}

	dtoVehicles := make([]dto.VehicleResponse, len(vehicles))
	for i := range vehicles {
		dtoVehicles[i] = vehicleToDTO(&vehicles[i])
	}

	c.JSON(http.StatusOK, dto.VehicleListResponse{
		Vehicles: dtoVehicles,
		Total:    len(dtoVehicles),
	})
}

// GetVehicle получает один автомобиль
// @Summary Получение автомобиля по ID
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID автомобиля"
// @Success 200 {object} dto.VehicleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/vehicles/{id} [get]
func (h *APIHandler) GetVehicle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID автомобиля")
		return
	}

	vehicle, err := h.Repository.GetVehicleByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Автомобиль не найден")
		return
	}

	c.JSON(http.StatusOK, vehicleToDTO(vehicle))
}

// CreateVehicle создает автомобиль
// @Summary Создание автомобиля
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateVehicleRequest true "Данные автомобиля"
// @Success 201 {object} dto.VehicleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/vehicles [post]
func (h *APIHandler) CreateVehicle(c *gin.Context) {
	var req dto.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	exists, err := h.Repository.CustomerExists(req.CustomerID)
	if err != nil || !exists {
		h.errorResponse(c, http.StatusNotFound, "Клиент не найден")
		return
	}

	vehicle, err := h.Repository.CreateVehicle(req.Plate, req.Brand, req.Model, req.Color, req.CustomerID)
	if err != nil {
		// Уникальность номера держит база
		logrus.Error("Error creating vehicle: ", err)
		h.errorResponse(c, http.StatusBadRequest, "Ошибка создания автомобиля (возможно, номер уже зарегистрирован)")
		return
	}

	c.JSON(http.StatusCreated, vehicleToDTO(vehicle))
}

// UpdateVehicle обновляет автомобиль
// @Summary Обновление автомобиля
// @Description Частичное обновление: меняются только переданные поля
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID автомобиля"
// @Param request body dto.UpdateVehicleRequest true "Данные для обновления"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/vehicles/{id} [put]
func (h *APIHandler) UpdateVehicle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID автомобиля")
		return
	}

	var req dto.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	exists, err := h.Repository.VehicleExists(uint(id))
	if err != nil || !exists {
		h.errorResponse(c, http.StatusNotFound, "Автомобиль не найден")
		return
	}

	if req.CustomerID != nil {
		ok, err := h.Repository.CustomerExists(*req.CustomerID)
		if err != nil || !ok {
			h.errorResponse(c, http.StatusNotFound, "Клиент не найден")
			return
		}
	}

	err = h.Repository.UpdateVehicle(uint(id), req.Plate, req.Brand, req.Model, req.Color, req.CustomerID)
	if err != nil {
		logrus.Error("Error updating vehicle: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления автомобиля")
		return
	}

	h.successResponse(c, http.StatusOK, "Автомобиль успешно обновлён", nil)
}

// DeleteVehicle удаляет автомобиль
// @Summary Удаление автомобиля
// @Description Удаление отклоняется, пока есть заказ-наряды по автомобилю
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID автомобиля"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/vehicles/{id} [delete]
func (h *APIHandler) DeleteVehicle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID автомобиля")
		return
	}

	err = h.Repository.DeleteVehicle(uint(id))
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

// GetVehicleByPlate ищет автомобиль по госномеру
// @Summary Поиск автомобиля по госномеру
// @Description Возвращает автомобиль и его владельца по точному номеру
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param plate path string true "Госномер"
// @Success 200 {object} dto.VehicleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/vehicles/plate/{plate} [get]
func (h *APIHandler) GetVehicleByPlate(c *gin.Context) {
	plate := c.Param("plate")
	if plate == "" {
		h.errorResponse(c, http.StatusBadRequest, "Номер не указан")
		return
	}

	vehicle, err := h.Repository.GetVehicleByPlate(plate)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Автомобиль не найден")
		return
	}

	c.JSON(http.StatusOK, vehicleToDTO(vehicle))
}
