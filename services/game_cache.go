package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KingGimer44/VideoJuego/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	GameCachePrefix     = "game:detail:"
	GameListCachePrefix = "games:v:"
	CacheVersionKey     = "games:version"

	DefaultCacheTTL = 5 * time.Minute
)

// GameCache caches list results and single games. Misses and backend
// failures look the same to callers. Lookups return the cache version they
// saw; writes carry it back and are dropped if an Invalidate ran since.
type GameCache interface {
	GetList(ctx context.Context, q models.ListGamesQuery) ([]models.Game, int64, bool)
	SetList(ctx context.Context, version int64, q models.ListGamesQuery, games []models.Game)
	GetGame(ctx context.Context, id string) (*models.Game, int64, bool)
	SetGame(ctx context.Context, version int64, game *models.Game)
	Invalidate(ctx context.Context, id string)
}

// NoopGameCache is used when no Redis is configured.
type NoopGameCache struct{}

func (NoopGameCache) GetList(context.Context, models.ListGamesQuery) ([]models.Game, int64, bool) {
	return nil, 0, false
}
func (NoopGameCache) SetList(context.Context, int64, models.ListGamesQuery, []models.Game) {}
func (NoopGameCache) GetGame(context.Context, string) (*models.Game, int64, bool) {
	return nil, 0, false
}
func (NoopGameCache) SetGame(context.Context, int64, *models.Game) {}
func (NoopGameCache) Invalidate(context.Context, string)           {}

// setIfVersion writes KEYS[2] only while KEYS[1] still holds ARGV[1].
var setIfVersion = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
	return 1
end
return 0
`)

// RedisGameCache stores JSON in Redis. List keys embed a version number;
// bumping the version invalidates every cached list at once.
type RedisGameCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisGameCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisGameCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisGameCache{redis: client, ttl: ttl, logger: logger}
}

func (c *RedisGameCache) GetList(ctx context.Context, q models.ListGamesQuery) ([]models.Game, int64, bool) {
	version, err := c.getCacheVersion(ctx)
	if err != nil {
		return nil, 0, false
	}

	cached, err := c.redis.Get(ctx, listCacheKey(version, q)).Result()
	if err != nil {
		return nil, version, false
	}

	var games []models.Game
	if err := json.Unmarshal([]byte(cached), &games); err != nil {
		c.logger.Warn("Failed to unmarshal cached game list", zap.Error(err))
		return nil, version, false
	}
	return games, version, true
}

// SetList caches games in the background under the version GetList saw.
func (c *RedisGameCache) SetList(_ context.Context, version int64, q models.ListGamesQuery, games []models.Game) {
	if version <= 0 {
		return
	}
	data, err := json.Marshal(games)
	if err != nil {
		c.logger.Warn("Failed to marshal game list for cache", zap.Error(err))
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := c.storeIfCurrent(bgCtx, version, listCacheKey(version, q), data); err != nil {
			c.logger.Warn("Failed to cache game list", zap.Error(err))
		}
	}()
}

func (c *RedisGameCache) GetGame(ctx context.Context, id string) (*models.Game, int64, bool) {
	version, err := c.getCacheVersion(ctx)
	if err != nil {
		return nil, 0, false
	}
	cached, err := c.redis.Get(ctx, GameCachePrefix+id).Result()
	if err != nil {
		return nil, version, false
	}
	var game models.Game
	if err := json.Unmarshal([]byte(cached), &game); err != nil {
		c.logger.Warn("Failed to unmarshal cached game", zap.Error(err), zap.String("game_id", id))
		return nil, version, false
	}
	return &game, version, true
}

// SetGame caches one game in the background under the version GetGame saw.
func (c *RedisGameCache) SetGame(_ context.Context, version int64, game *models.Game) {
	if version <= 0 || game == nil {
		return
	}
	data, err := json.Marshal(game)
	if err != nil {
		c.logger.Warn("Failed to marshal game for cache", zap.Error(err), zap.String("game_id", game.ID))
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := c.storeIfCurrent(bgCtx, version, GameCachePrefix+game.ID, data); err != nil {
			c.logger.Warn("Failed to cache game", zap.Error(err), zap.String("game_id", game.ID))
		}
	}()
}

// Invalidate bumps the version and drops the cached game id. Both run
// synchronously so a following read cannot see the old row, and writes
// still in flight carry the old version and are discarded.
func (c *RedisGameCache) Invalidate(ctx context.Context, id string) {
	if err := c.redis.Incr(ctx, CacheVersionKey).Err(); err != nil {
		c.logger.Error("Failed to invalidate game list cache", zap.Error(err), zap.String("game_id", id))
	}
	if id == "" {
		return
	}
	if err := c.redis.Del(ctx, GameCachePrefix+id).Err(); err != nil {
		c.logger.Warn("Failed to delete game cache", zap.Error(err), zap.String("game_id", id))
	}
}

// storeIfCurrent sets key to data unless the version moved past version.
func (c *RedisGameCache) storeIfCurrent(ctx context.Context, version int64, key string, data []byte) (bool, error) {
	stored, err := setIfVersion.Run(ctx, c.redis,
		[]string{CacheVersionKey, key},
		strconv.FormatInt(version, 10), data, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

func (c *RedisGameCache) getCacheVersion(ctx context.Context) (int64, error) {
	ver, err := c.redis.Get(ctx, CacheVersionKey).Int64()
	if err == nil {
		return ver, nil
	}
	if !errors.Is(err, redis.Nil) {
		return 0, err
	}
	// SetNX keeps a concurrent Incr from being overwritten.
	if err := c.redis.SetNX(ctx, CacheVersionKey, 1, 0).Err(); err != nil {
		return 0, err
	}
	return c.redis.Get(ctx, CacheVersionKey).Int64()
}

func listCacheKey(version int64, q models.ListGamesQuery) string {
	genre := q.Genre
	if !q.FiltersGenre() {
		genre = ""
	}
	return fmt.Sprintf("%s%d:s:%s:g:%s:o:%s",
		GameListCachePrefix,
		version,
		strings.ToLower(strings.TrimSpace(q.Search)),
		genre,
		q.SortKey(),
	)
}
