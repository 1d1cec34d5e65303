package middleware

import (
	"backend/internal/app/config"
	"backend/internal/app/ds"
	"backend/internal/app/redis"
	"backend/internal/app/repository"
	"backend/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// Имя куки с идентификатором сессии
const SessionCookie = "session_id"

type AuthMiddleware struct {
	Repository  *repository.Repository
	RedisClient *redis.Client
	Config      *config.Config
}

func NewAuthMiddleware(r *repository.Repository, redisClient *redis.Client, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		Repository:  r,
		RedisClient: redisClient,
		Config:      cfg,
	}
}

// WithAuthCheck принимает либо сессионную куку, либо Bearer-токен.
// При необходимости проверяет роль пользователя.
func (am *AuthMiddleware) WithAuthCheck(assignedRoles ...role.Role) gin.HandlerFunc {
	return gin.HandlerFunc(func(gCtx *gin.Context) {
		userID, userRole, ok := am.userFromSession(gCtx)
		if !ok {
			userID, userRole, ok = am.userFromBearer(gCtx)
		}
		if !ok {
			gCtx.AbortWithStatus(401) // Unauthorized
			return
		}

		// Проверяем роли пользователя
		if len(assignedRoles) > 0 && !am.hasRequiredRole(userRole, assignedRoles) {
			gCtx.AbortWithStatus(403) // Forbidden
			return
		}

		// Сохраняем данные пользователя в контексте для последующего использования
		gCtx.Set("userID", userID)
		gCtx.Set("userRole", userRole)

		gCtx.Next()
	})
}

// userFromSession проверяет сессионную куку по Redis
func (am *AuthMiddleware) userFromSession(gCtx *gin.Context) (uint, role.Role, bool) {
	sessionID, err := gCtx.Cookie(SessionCookie)
	if err != nil || sessionID == "" {
		return 0, role.Worker, false
	}

	userID, err := am.RedisClient.GetSession(gCtx.Request.Context(), sessionID)
	if err != nil {
		return 0, role.Worker, false
	}

	// Роль берём из базы, а не из сессии: снятие прав действует сразу
	user, err := am.Repository.GetUserByID(userID)
	if err != nil {
		return 0, role.Worker, false
	}

	return user.ID, role.FromIsAdmin(user.IsAdmin), true
}

// userFromBearer проверяет JWT токен из заголовка Authorization
func (am *AuthMiddleware) userFromBearer(gCtx *gin.Context) (uint, role.Role, bool) {
	jwtStr := gCtx.GetHeader("Authorization")
	if jwtStr == "" {
		return 0, role.Worker, false
	}

	// Убираем префикс "Bearer " если он есть
	if len(jwtStr) > 7 && jwtStr[:7] == "Bearer " {
		jwtStr = jwtStr[7:]
	}

	// Проверяем токен в blacklist Redis
	err := am.RedisClient.CheckJWTInBlacklist(gCtx.Request.Context(), jwtStr)
	if err == nil {
		// Токен в blacklist
		return 0, role.Worker, false
	}

	token, err := am.parseJWTToken(jwtStr)
	if err != nil {
		return 0, role.Worker, false
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok || !token.Valid {
		return 0, role.Worker, false
	}

	return claims.UserID, claims.Role, true
}

// parseJWTToken парсит и валидирует JWT токен
func (am *AuthMiddleware) parseJWTToken(tokenString string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(am.Config.JWT.Token), nil
	})
}

// hasRequiredRole проверяет, есть ли у пользователя необходимая роль
func (am *AuthMiddleware) hasRequiredRole(userRole role.Role, requiredRoles []role.Role) bool {
	for _, requiredRole := range requiredRoles {
		if userRole == requiredRole {
			return true
		}
	}
	return false
}
