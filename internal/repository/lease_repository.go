package repository

import (
	"context"
	"fmt"
	"instashare-backend/config"
	"instashare-backend/internal/util"
	"time"

	"github.com/redis/go-redis/v9"
)

// PostgresLease : аренда документа через условный UPDATE по колонкам processing_*
type PostgresLease struct {
	*config.Database
}

func NewPostgresLease(database *config.Database) *PostgresLease {
	return &PostgresLease{database}
}

// Acquire : захватывает документ, если он всё ещё uploaded и аренда свободна или истекла
func (l *PostgresLease) Acquire(ctx context.Context, documentUUID, holder string, ttl time.Duration) (bool, error) {
	query := `
		UPDATE documents
		SET processing_since = NOW(), processing_holder = $2
		WHERE uuid = $1
		  AND status = 'uploaded'
		  AND deleted_at IS NULL
		  AND (processing_since IS NULL
		       OR processing_holder = $2
		       OR processing_since < NOW() - make_interval(secs => $3))
	`
	result, err := l.DB.ExecContext(ctx, query, documentUUID, holder, ttl.Seconds())
	if err != nil {
		return false, util.LogError("[LeaseRepo] не удалось захватить документ", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, util.LogError("[LeaseRepo] не удалось проверить захват документа", err)
	}

	return rowsAffected == 1, nil
}

// Release : снимает аренду, только если она принадлежит holder
func (l *PostgresLease) Release(ctx context.Context, documentUUID, holder string) error {
	query := `
		UPDATE documents
		SET processing_since = NULL, processing_holder = NULL
		WHERE uuid = $1 AND processing_holder = $2
	`
	if _, err := l.DB.ExecContext(ctx, query, documentUUID, holder); err != nil {
		return util.LogError("[LeaseRepo] не удалось освободить документ", err)
	}
	return nil
}

// снимаем ключ, только если значение совпадает с holder
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLease : аренда документа через SET NX PX
type RedisLease struct {
	client *config.RedisClient
}

func NewRedisLease(client *config.RedisClient) *RedisLease {
	return &RedisLease{client: client}
}

func (l *RedisLease) Acquire(ctx context.Context, documentUUID, holder string, ttl time.Duration) (bool, error) {
	ok, err := l.client.Client.SetNX(ctx, l.key(documentUUID), holder, ttl).Result()
	if err != nil {
		return false, util.LogError("[LeaseRepo] не удалось захватить документ в Redis", err)
	}
	return ok, nil
}

func (l *RedisLease) Release(ctx context.Context, documentUUID, holder string) error {
	if err := releaseScript.Run(ctx, l.client.Client, []string{l.key(documentUUID)}, holder).Err(); err != nil {
		return util.LogError("[LeaseRepo] не удалось освободить документ в Redis", err)
	}
	return nil
}

func (l *RedisLease) key(documentUUID string) string {
	return fmt.Sprintf("lease:document:%s", documentUUID)
}
