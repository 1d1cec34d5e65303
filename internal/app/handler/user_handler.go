package handler

import (
	"net/http"
	"strconv"

	"backend/internal/app/dto"
	"backend/internal/app/password"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН ПОЛЬЗОВАТЕЛИ ============

// GetUsers получает список пользователей
// @Summary Получение списка пользователей
// @Description Доступно только администратору; пароли в ответ не попадают
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/users [get]
func (h *APIHandler) GetUsers(c *gin.Context) {
	users, err := h.Repository.GetUsers()
	if err != nil {
		logrus.Error("Error getting users: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения пользователей")
		return
	}

	response := make([]dto.UserResponse, len(users))
	for i := range users {
		response[i] = userToDTO(&users[i])
	}

	c.JSON(http.StatusOK, response)
}

// GetUser получает пользователя по ID
// @Summary Получение пользователя по ID
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID пользователя"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/users/{id} [get]
func (h *APIHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID пользователя")
		return
	}

	user, err := h.Repository.GetUserByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Пользователь не найден")
		return
	}

	c.JSON(http.StatusOK, userToDTO(user))
}

// UpdateUser обновляет пользователя
// @Summary Обновление пользователя
// @Description Администратор меняет имя и/или сбрасывает пароль сотрудника
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID пользователя"
// @Param request body dto.UpdateUserRequest true "Данные для обновления"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/users/{id} [put]
func (h *APIHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID пользователя")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	if _, err := h.Repository.GetUserByID(uint(id)); err != nil {
		h.errorResponse(c, http.StatusNotFound, "Пользователь не найден")
		return
	}

	var fullName, hashed *string
	if req.FullName != "" {
		fullName = &req.FullName
	}
	if req.Password != "" {
		hp, err := password.Hash(req.Password)
		if err != nil {
			h.errorResponse(c, http.StatusInternalServerError, "Ошибка обработки пароля")
			return
		}
		hashed = &hp
	}

	if err := h.Repository.UpdateUser(uint(id), fullName, hashed); err != nil {
		logrus.Error("Error updating user: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления пользователя")
		return
	}

	user, err := h.Repository.GetUserByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления пользователя")
		return
	}

	c.JSON(http.StatusOK, userToDTO(user))
}
