package carbon

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	model "github.com/glkeru/carbon/internal/models"
	redis "github.com/redis/go-redis/v9"
)

const balanceTTL = 5 * time.Minute

// запись не заменяется балансом с меньшей версией счета
var setBalanceScript = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'version')
if current and tonumber(current) > tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'version', ARGV[1], 'data', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

type CacheService struct {
	client *redis.Client
}

func NewCacheService(ctx context.Context, addr, user, pwd string) (serv *CacheService, err error) {
	if addr == "" {
		return nil, fmt.Errorf("env CARBON_CACHE_URL is not set")
	}
	db := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    pwd,
		Username:    user,
		DB:          0,
		MaxRetries:  5,
		DialTimeout: 10 * time.Second,
	})
	err = db.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return &CacheService{db}, nil
}

func balanceKey(user string) string {
	return "carbon:balance:" + user
}

func (c *CacheService) GetBalance(ctx context.Context, user string) (balance model.Balance, err error) {
	vals, err := c.client.HMGet(ctx, balanceKey(user), "version", "data").Result()
	if err != nil {
		return balance, err
	}
	version, okVersion := vals[0].(string)
	data, okData := vals[1].(string)
	if !okVersion || !okData {
		return balance, fmt.Errorf("balance %w", model.ErrNotFound)
	}

	err = json.Unmarshal([]byte(data), &balance)
	if err != nil {
		return balance, err
	}
	balance.Version, err = strconv.ParseInt(version, 10, 64)
	if err != nil {
		return balance, err
	}
	return balance, nil
}

// SetBalance - сохранить, если в кэше нет более новой версии
func (c *CacheService) SetBalance(ctx context.Context, balance model.Balance) (err error) {
	val, err := json.Marshal(balance)
	if err != nil {
		return err
	}
	return setBalanceScript.Run(ctx, c.client, []string{balanceKey(balance.UserID)},
		balance.Version, val, balanceTTL.Milliseconds()).Err()
}

func (c *CacheService) InvalidateBalance(ctx context.Context, user string) error {
	return c.client.Del(ctx, balanceKey(user)).Err()
}

func (c *CacheService) Close() error {
	return c.client.Close()
}
