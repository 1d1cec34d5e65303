package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"backend/internal/app/backup"
	"backend/internal/app/ds"
	"backend/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН РЕЗЕРВНЫЕ КОПИИ ============

// ExportBackup выгружает полный снимок данных
// @Summary Экспорт резервной копии
// @Description Отдаёт JSON-снимок всех данных как файл для скачивания
// @Tags Backup
// @Produce json
// @Security BearerAuth
// @Success 200 {object} backup.Snapshot
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/backup/export [get]
func (h *APIHandler) ExportBackup(c *gin.Context) {
	snap, err := h.BackupEngine.Export()
	if err != nil {
		logrus.Error("Error exporting backup: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка экспорта резервной копии")
		return
	}

	filename := backup.Filename(true, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, snap)
}

// ImportBackup восстанавливает данные из снимка
// @Summary Импорт резервной копии
// @Description Заменяет данные содержимым снимка в одной транзакции; системные услуги и администраторы сохраняются
// @Tags Backup
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param snapshot body backup.Snapshot true "Снимок данных"
// @Success 200 {object} dto.ImportResultResponse
// @Failure 400 {object} dto.ImportResultResponse
// @Router /api/backup/import [post]
func (h *APIHandler) ImportBackup(c *gin.Context) {
	var snap backup.Snapshot
	if err := json.NewDecoder(c.Request.Body).Decode(&snap); err != nil {
		c.JSON(http.StatusBadRequest, dto.ImportResultResponse{
			Message: "Неверный формат снимка: " + err.Error(),
			Success: false,
		})
		return
	}

	if err := h.BackupEngine.Import(&snap); err != nil {
		logrus.Error("Error importing backup: ", err)
		c.JSON(http.StatusBadRequest, dto.ImportResultResponse{
			Message: "Импорт не выполнен: " + err.Error(),
			Success: false,
		})
		return
	}

	c.JSON(http.StatusOK, dto.ImportResultResponse{
		Message: "Данные успешно восстановлены",
		Success: true,
	})
}

// ListBackups возвращает список сохранённых на сервере копий
// @Summary Список резервных копий
// @Description Копии из каталога бэкапов, новые первыми
// @Tags Backup
// @Produce json
// @Security BearerAuth
// @Success 200 {array} backup.FileInfo
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/backup/list [get]
func (h *APIHandler) ListBackups(c *gin.Context) {
	files, err := backup.ListBackups(h.BackupDir)
	if err != nil {
		logrus.Error("Error listing backups: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения каталога резервных копий")
		return
	}

	c.JSON(http.StatusOK, files)
}

// CreateManualBackup сохраняет копию на сервере
// @Summary Создание ручной резервной копии
// @Description Пишет снимок в каталог бэкапов; ручные копии не удаляются автоматической очисткой
// @Tags Backup
// @Produce json
// @Security BearerAuth
// @Success 201 {object} backup.FileInfo
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/backup/manual [post]
func (h *APIHandler) CreateManualBackup(c *gin.Context) {
	info, err := h.BackupEngine.WriteToDir(h.BackupDir, true)
	if err != nil {
		logrus.Error("Error writing manual backup: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания резервной копии")
		return
	}

	c.JSON(http.StatusCreated, info)
}

// GetBackupSettings возвращает настройки автобэкапа
// @Summary Настройки автоматического резервного копирования
// @Tags Backup
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BackupSettingsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/backup/settings [get]
func (h *APIHandler) GetBackupSettings(c *gin.Context) {
	enabled, err := h.Repository.GetSettingBool(ds.SettingAutoBackupEnabled)
	if err != nil {
		logrus.Error("Error reading backup settings: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения настроек")
		return
	}

	c.JSON(http.StatusOK, dto.BackupSettingsResponse{AutoBackupEnabled: enabled})
}

// UpdateBackupSettings изменяет настройки автобэкапа
// @Summary Изменение настроек автоматического резервного копирования
// @Tags Backup
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BackupSettingsRequest true "Настройки"
// @Success 200 {object} dto.BackupSettingsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/backup/settings [post]
func (h *APIHandler) UpdateBackupSettings(c *gin.Context) {
	var req dto.BackupSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	if err := h.Repository.SetSettingBool(ds.SettingAutoBackupEnabled, req.AutoBackupEnabled); err != nil {
		logrus.Error("Error saving backup settings: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка сохранения настроек")
		return
	}

	c.JSON(http.StatusOK, dto.BackupSettingsResponse{AutoBackupEnabled: req.AutoBackupEnabled})
}
