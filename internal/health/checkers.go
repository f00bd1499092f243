package health

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/strokesense/orchestrator/internal/db"
)

// RedisChecker verifies the event-log redis collaborator.
type RedisChecker struct {
	client   *redis.Client
	critical bool
}

func NewRedisChecker(client *redis.Client, critical bool) *RedisChecker {
	return &RedisChecker{client: client, critical: critical}
}

func (c *RedisChecker) Name() string     { return "redis" }
func (c *RedisChecker) IsCritical() bool { return c.critical }

func (c *RedisChecker) Check(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{
		Component: c.Name(),
		Timestamp: start,
		Critical:  c.critical,
	}
	if err := c.client.Ping(ctx).Err(); err != nil {
		result.Status = StatusUnhealthy
		result.Error = err.Error()
	} else {
		result.Status = StatusHealthy
	}
	result.Duration = time.Since(start)
	return result
}

// DatabaseChecker verifies the postgres event-log collaborator.
type DatabaseChecker struct {
	client   *db.Client
	critical bool
}

func NewDatabaseChecker(client *db.Client, critical bool) *DatabaseChecker {
	return &DatabaseChecker{client: client, critical: critical}
}

func (c *DatabaseChecker) Name() string     { return "database" }
func (c *DatabaseChecker) IsCritical() bool { return c.critical }

func (c *DatabaseChecker) Check(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{
		Component: c.Name(),
		Timestamp: start,
		Critical:  c.critical,
	}
	if err := c.client.Ping(ctx); err != nil {
		result.Status = StatusUnhealthy
		result.Error = err.Error()
	} else {
		result.Status = StatusHealthy
	}
	result.Duration = time.Since(start)
	return result
}

// TemporalChecker verifies the workflow backend through a caller-supplied
// ping, keeping this package free of the temporal client dependency.
type TemporalChecker struct {
	ping     func(ctx context.Context) error
	critical bool
}

func NewTemporalChecker(ping func(ctx context.Context) error, critical bool) *TemporalChecker {
	return &TemporalChecker{ping: ping, critical: critical}
}

func (c *TemporalChecker) Name() string     { return "temporal" }
func (c *TemporalChecker) IsCritical() bool { return c.critical }

func (c *TemporalChecker) Check(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{
		Component: c.Name(),
		Timestamp: start,
		Critical:  c.critical,
	}
	if err := c.ping(ctx); err != nil {
		result.Status = StatusUnhealthy
		result.Error = err.Error()
	} else {
		result.Status = StatusHealthy
	}
	result.Duration = time.Since(start)
	return result
}
