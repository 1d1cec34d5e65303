package handler

import (
	"backend/internal/app/middleware"
	"backend/internal/app/role"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterAPIRoutes регистрирует все маршруты REST API.
// Чтение и повседневные операции доступны работнику и администратору,
// управление каталогом, пользователями и восстановление - только администратору.
func (h *APIHandler) RegisterAPIRoutes(r *gin.Engine, am *middleware.AuthMiddleware) {
	r.GET("/ping", h.Ping)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Аутентификация: вход доступен без токена
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", h.AuthHandler.LoginUser)
		auth.POST("/session-login", h.AuthHandler.SessionLoginUser)
		auth.POST("/logout", am.WithAuthCheck(role.Worker, role.Admin), h.AuthHandler.LogoutUser)
		auth.POST("/session-logout", am.WithAuthCheck(role.Worker, role.Admin), h.AuthHandler.SessionLogoutUser)
		auth.POST("/register", am.WithAuthCheck(role.Admin), h.AuthHandler.RegisterUser)
		auth.GET("/profile", am.WithAuthCheck(role.Worker, role.Admin), h.AuthHandler.GetUserProfile)
		auth.POST("/change-password", am.WithAuthCheck(role.Worker, role.Admin), h.AuthHandler.ChangePassword)
	}

	users := r.Group("/api/users", am.WithAuthCheck(role.Admin))
	{
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
	}

	customers := r.Group("/api/customers", am.WithAuthCheck(role.Worker, role.Admin))
	{
		customers.GET("", h.GetCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.POST("", h.CreateCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
	}

	vehicles := r.Group("/api/vehicles", am.WithAuthCheck(role.Worker, role.Admin))
	{
		vehicles.GET("", h.GetVehicles)
		vehicles.GET("/:id", h.GetVehicle)
		vehicles.GET("/plate/:plate", h.GetVehicleByPlate)
		vehicles.POST("", h.CreateVehicle)
		vehicles.PUT("/:id", h.UpdateVehicle)
		vehicles.DELETE("/:id", h.DeleteVehicle)
	}

	// Каталог услуг читается без авторизации - его показывает публичная витрина
	services := r.Group("/api/services")
	{
		services.GET("", h.GetServices)
		services.GET("/:id", h.GetService)
		services.POST("", am.WithAuthCheck(role.Admin), h.CreateService)
		services.PUT("/:id", am.WithAuthCheck(role.Admin), h.UpdateService)
		services.DELETE("/:id", am.WithAuthCheck(role.Admin), h.DeleteService)
		services.POST("/:id/image", am.WithAuthCheck(role.Admin), h.UploadServiceImage)
	}

	jobs := r.Group("/api/jobs", am.WithAuthCheck(role.Worker, role.Admin))
	{
		jobs.GET("", h.GetJobs)
		jobs.GET("/:id", h.GetJob)
		jobs.POST("", h.CreateJob)
		jobs.PUT("/:id", h.UpdateJob)
		jobs.DELETE("/:id", h.DeleteJob)
	}

	jobServices := r.Group("/api/job-services", am.WithAuthCheck(role.Worker, role.Admin))
	{
		jobServices.POST("/:job_id/:service_id", h.AddServiceToJob)
		jobServices.DELETE("/:job_id/:service_id", h.RemoveServiceFromJob)
	}

	expenses := r.Group("/api/expenses", am.WithAuthCheck(role.Worker, role.Admin))
	{
		expenses.GET("", h.GetExpenses)
		expenses.GET("/:id", h.GetExpense)
		expenses.POST("", h.CreateExpense)
		expenses.PUT("/:id", h.UpdateExpense)
		expenses.DELETE("/:id", h.DeleteExpense)
	}

	statsGroup := r.Group("/api/stats", am.WithAuthCheck(role.Worker, role.Admin))
	{
		statsGroup.GET("/daily", h.GetDailyStats)
		statsGroup.GET("/payment-methods", h.GetPaymentMethodStats)
		statsGroup.GET("/net-profit", h.GetNetProfit)
		statsGroup.GET("/popular-services", h.GetPopularServices)
	}

	backupGroup := r.Group("/api/backup")
	{
		backupGroup.GET("/export", am.WithAuthCheck(role.Worker, role.Admin), h.ExportBackup)
		backupGroup.GET("/list", am.WithAuthCheck(role.Worker, role.Admin), h.ListBackups)
		backupGroup.GET("/settings", am.WithAuthCheck(role.Worker, role.Admin), h.GetBackupSettings)
		// Восстановление затирает данные, поэтому только администратор
		backupGroup.POST("/import", am.WithAuthCheck(role.Admin), h.ImportBackup)
		backupGroup.POST("/manual", am.WithAuthCheck(role.Admin), h.CreateManualBackup)
		backupGroup.POST("/settings", am.WithAuthCheck(role.Admin), h.UpdateBackupSettings)
	}
}
