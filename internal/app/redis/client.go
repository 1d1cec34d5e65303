package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"backend/internal/app/config"

	"github.com/go-redis/redis/v8"
)

const (
	jwtPrefix     = "jwt."
	sessionPrefix = "session."
)

type Client struct {
	cfg    config.RedisConfig
	client *redis.Client
}

func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	c := &Client{cfg: cfg}

	c.client = redis.NewClient(&redis.Options{
		Password:    cfg.Password,
		Username:    cfg.User,
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		DB:          0,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})

	if err := c.client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cannot ping redis: %w", err)
	}

	return c, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// WriteJWTToBlacklist помещает токен в blacklist до истечения его срока
func (c *Client) WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error {
	return c.client.Set(ctx, jwtPrefix+jwtStr, true, jwtTTL).Err()
}

// CheckJWTInBlacklist возвращает nil, если токен находится в blacklist
func (c *Client) CheckJWTInBlacklist(ctx context.Context, jwtStr string) error {
	return c.client.Get(ctx, jwtPrefix+jwtStr).Err()
}

// SaveSession создаёт запись сессии для пользователя
func (c *Client) SaveSession(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error {
	return c.client.Set(ctx, sessionPrefix+sessionID, strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

// GetSession возвращает ID пользователя по идентификатору сессии
func (c *Client) GetSession(ctx context.Context, sessionID string) (uint, error) {
	val, err := c.client.Get(ctx, sessionPrefix+sessionID).Result()
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("corrupted session value: %w", err)
	}
	return uint(userID), nil
}

// DeleteSession удаляет сессию (выход из системы)
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, sessionPrefix+sessionID).Err()
}
