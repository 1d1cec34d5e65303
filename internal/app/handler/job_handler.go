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
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН ЗАКАЗ-НАРЯДЫ ============

func jobToDTO(j *ds.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:            j.ID,
		VehicleID:     j.VehicleID,
		VehiclePlate:  j.Vehicle.Plate,
		CustomerID:    j.CustomerID,
		CustomerName:  j.Customer.Name,
		TotalAmount:   j.TotalAmount.Round(2),
		PaidAmount:    j.PaidAmount.Round(2),
		PaymentMethod: string(j.PaymentMethod),
		Status:        string(j.Status),
		Notes:         j.Notes,
		CreatedAt:     j.CreatedAt,
	}
}

// GetJobs получает список заказ-нарядов
// @Summary Получение списка заказ-нарядов
// @Description Возвращает заказ-наряды с фильтрами по статусу, клиенту, автомобилю и датам
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу"
// @Param customer_id query int false "Фильтр по клиенту"
// @Param vehicle_id query int false "Фильтр по автомобилю"
// @Param date_from query string false "Дата начала (формат: 2006-01-02)"
// @Param date_to query string false "Дата окончания (формат: 2006-01-02)"
// @Success 200 {object} dto.JobListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/jobs [get]
func (h *APIHandler) GetJobs(c *gin.Context) {
	var filter repository.JobFilter

	if status := c.Query("status"); status != "" {
		if !ds.JobStatus(status).Valid() {
			h.errorResponse(c, http.StatusBadRequest, "Неверный статус")
			return
		}
		filter.Status = ds.JobStatus(status)
	}
	if s := c.Query("customer_id"); s != "" {
		parsed, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверный ID клиента")
			return
		}
		filter.CustomerID = uint(parsed)
	}
	if s := c.Query("vehicle_id"); s != "" {
		parsed, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверный ID автомобиля")
			return
		}
		filter.VehicleID = uint(parsed)
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

	jobs, err := h.Repository.GetJobs(filter)
	if err != nil {
		logrus.Error("Error getting jobs: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения заказ-нарядов")
		return
	}

	dtoJobs := make([]dto.JobResponse, len(jobs))
	for i := range jobs {
		dtoJobs[i] = jobToDTO(&jobs[i])
	}

	c.JSON(http.StatusOK, dto.JobListResponse{
		Jobs:  dtoJobs,
		Total: len(dtoJobs),
	})
}

// GetJob получает один заказ-наряд
// @Summary Получение заказ-наряда по ID
// @Description Возвращает заказ-наряд вместе с выполненными услугами
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказ-наряда"
// @Success 200 {object} dto.JobResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/jobs/{id} [get]
func (h *APIHandler) GetJob(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заказ-наряда")
		return
	}

	job, err := h.Repository.GetJobByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Заказ-наряд не найден")
		return
	}

	services, err := h.Repository.GetJobServices(job.ID)
	if err != nil {
		logrus.Error("Error getting job services: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка загрузки услуг")
		return
	}

	response := jobToDTO(job)
	response.Services = make([]dto.ServiceResponse, len(services))
	for i := range services {
		response.Services[i] = serviceToDTO(&services[i])
	}

	c.JSON(http.StatusOK, response)
}

// CreateJob создает заказ-наряд
// @Summary Создание заказ-наряда
// @Description Создает заказ-наряд со списком услуг; без totalAmount сумма считается по прайсу
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobRequest true "Данные заказ-наряда"
// @Success 201 {object} dto.JobResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/jobs [post]
func (h *APIHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	exists, err := h.Repository.VehicleExists(req.VehicleID)
	if err != nil || !exists {
		h.errorResponse(c, http.StatusNotFound, "Автомобиль не найден")
		return
	}
	exists, err = h.Repository.CustomerExists(req.CustomerID)
	if err != nil || !exists {
		h.errorResponse(c, http.StatusNotFound, "Клиент не найден")
		return
	}

	totalAmount := decimal.Zero
	if req.TotalAmount != nil {
		if req.TotalAmount.IsNegative() {
			h.errorResponse(c, http.StatusBadRequest, "Сумма не может быть отрицательной")
			return
		}
		totalAmount = *req.TotalAmount
	}
	paidAmount := decimal.Zero
	if req.PaidAmount != nil {
		if req.PaidAmount.IsNegative() {
			h.errorResponse(c, http.StatusBadRequest, "Оплата не может быть отрицательной")
			return
		}
		paidAmount = *req.PaidAmount
	}
	// Переплату отклоняем на границе API; хранилище это не проверяет
	if req.TotalAmount != nil && paidAmount.GreaterThan(totalAmount) {
		h.errorResponse(c, http.StatusBadRequest, "Оплаченная сумма не может превышать итоговую")
		return
	}

	status := ds.JobStatusPending
	if req.Status != "" {
		status = ds.JobStatus(req.Status)
	}

	job, err := h.Repository.CreateJob(req.VehicleID, req.CustomerID, req.ServiceIDs,
		totalAmount, paidAmount, ds.PaymentMethod(req.PaymentMethod), status, req.Notes)
	if err != nil {
		logrus.Error("Error creating job: ", err)
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// Перечитываем со связями для ответа
	created, err := h.Repository.GetJobByID(job.ID)
	if err != nil {
		c.JSON(http.StatusCreated, jobToDTO(job))
		return
	}

	c.JSON(http.StatusCreated, jobToDTO(created))
}

// UpdateJob обновляет заказ-наряд
// @Summary Обновление заказ-наряда
// @Description Частичное обновление сумм, статуса, способа оплаты и заметок
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказ-наряда"
// @Param request body dto.UpdateJobRequest true "Данные для обновления"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/jobs/{id} [put]
func (h *APIHandler) UpdateJob(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заказ-наряда")
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	job, err := h.Repository.GetJobByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Заказ-наряд не найден")
		return
	}

	// Проверяем итог против оплаты с учётом уже сохранённых значений
	totalAmount := job.TotalAmount
	if req.TotalAmount != nil {
		totalAmount = *req.TotalAmount
	}
	paidAmount := job.PaidAmount
	if req.PaidAmount != nil {
		paidAmount = *req.PaidAmount
	}
	if totalAmount.IsNegative() || paidAmount.IsNegative() {
		h.errorResponse(c, http.StatusBadRequest, "Суммы не могут быть отрицательными")
		return
	}
	if paidAmount.GreaterThan(totalAmount) {
		h.errorResponse(c, http.StatusBadRequest, "Оплаченная сумма не может превышать итоговую")
		return
	}

	var method *ds.PaymentMethod
	if req.PaymentMethod != nil {
		m := ds.PaymentMethod(*req.PaymentMethod)
		method = &m
	}
	var status *ds.JobStatus
	if req.Status != nil {
		s := ds.JobStatus(*req.Status)
		status = &s
	}

	err = h.Repository.UpdateJob(uint(id), req.TotalAmount, req.PaidAmount, method, status, req.Notes)
	if err != nil {
		logrus.Error("Error updating job: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления заказ-наряда")
		return
	}

	h.successResponse(c, http.StatusOK, "Заказ-наряд успешно обновлён", nil)
}

// DeleteJob удаляет заказ-наряд
// @Summary Удаление заказ-наряда
// @Description Удаляет заказ-наряд вместе со связями на услуги
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказ-наряда"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/jobs/{id} [delete]
func (h *APIHandler) DeleteJob(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заказ-наряда")
		return
	}

	err = h.Repository.DeleteJob(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

// ============ ДОМЕН М-М (Job Services) ============

// AddServiceToJob добавляет услугу в заказ-наряд
// @Summary Добавление услуги в заказ-наряд
// @Tags Job-Services
// @Produce json
// @Security BearerAuth
// @Param job_id path int true "ID заказ-наряда"
// @Param service_id path int true "ID услуги"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/job-services/{job_id}/{service_id} [post]
func (h *APIHandler) AddServiceToJob(c *gin.Context) {
	jobID, err1 := strconv.ParseUint(c.Param("job_id"), 10, 32)
	serviceID, err2 := strconv.ParseUint(c.Param("service_id"), 10, 32)
	if err1 != nil || err2 != nil || jobID == 0 || serviceID == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверные ID")
		return
	}

	exists, err := h.Repository.JobExists(uint(jobID))
	if err != nil || !exists {
		h.errorResponse(c, http.StatusNotFound, "Заказ-наряд не найден")
		return
	}
	exists, err = h.Repository.ServiceExists(uint(serviceID))
	if err != nil || !exists {
		h.errorResponse(c, http.StatusNotFound, "Услуга не найдена")
		return
	}

	if err := h.Repository.AddServiceToJob(uint(jobID), uint(serviceID)); err != nil {
		logrus.Error("Error adding service to job: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка добавления услуги в заказ-наряд")
		return
	}

	h.successResponse(c, http.StatusOK, "Услуга добавлена в заказ-наряд", nil)
}

// RemoveServiceFromJob удаляет услугу из заказ-наряда
// @Summary Удаление услуги из заказ-наряда
// @Tags Job-Services
// @Produce json
// @Security BearerAuth
// @Param job_id path int true "ID заказ-наряда"
// @Param service_id path int true "ID услуги"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/job-services/{job_id}/{service_id} [delete]
func (h *APIHandler) RemoveServiceFromJob(c *gin.Context) {
	jobID, err1 := strconv.ParseUint(c.Param("job_id"), 10, 32)
	serviceID, err2 := strconv.ParseUint(c.Param("service_id"), 10, 32)
	if err1 != nil || err2 != nil || jobID == 0 || serviceID == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверные ID")
		return
	}

	if err := h.Repository.RemoveServiceFromJob(uint(jobID), uint(serviceID)); err != nil {
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "Услуга удалена из заказ-наряда", nil)
}
