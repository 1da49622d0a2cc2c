package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vendaflow/backoffice/pkg/config"
)

func TestIncrWithTTLSetsExpiryOnce(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	for want := int64(1); want <= 3; want++ {
		count, err := client.IncrWithTTL(ctx, "k", time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != want {
			t.Fatalf("expected counter %d got %d", want, count)
		}
	}
	if len(mock.expireCalls) != 1 {
		t.Fatalf("expected a single expire call, got %d", len(mock.expireCalls))
	}
	if mock.expireCalls[0].ttl != time.Minute {
		t.Fatalf("unexpected ttl %v", mock.expireCalls[0].ttl)
	}
}

func TestSetNXOnlyFirstWins(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}

	first, err := client.SetNX(ctx, "lock", "a", time.Minute)
	if err != nil || !first {
		t.Fatalf("expected first SetNX to win, got %v %v", first, err)
	}
	second, err := client.SetNX(ctx, "lock", "b", time.Minute)
	if err != nil || second {
		t.Fatalf("expected second SetNX to lose, got %v %v", second, err)
	}
	owner, err := client.Get(ctx, "lock")
	if err != nil || owner != "a" {
		t.Fatalf("expected owner a, got %q %v", owner, err)
	}

	if err := client.Del(ctx, "lock"); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, "lock"); !IsNil(err) {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}

func TestDelIfValueComparesOwner(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}
	mock.data["lock"] = "owner-b"

	deleted, err := client.DelIfValue(ctx, "lock", "owner-a")
	if err != nil || deleted {
		t.Fatalf("expected foreign owner to be kept, got %v %v", deleted, err)
	}
	if mock.data["lock"] != "owner-b" {
		t.Fatalf("lock value changed to %q", mock.data["lock"])
	}

	deleted, err = client.DelIfValue(ctx, "lock", "owner-b")
	if err != nil || !deleted {
		t.Fatalf("expected owner delete, got %v %v", deleted, err)
	}
	if _, ok := mock.data["lock"]; ok {
		t.Fatal("expected lock key to be deleted")
	}
	if len(mock.scripts) != 2 {
		t.Fatalf("expected one script call per release, got %d", len(mock.scripts))
	}
}

func TestNilClientErrors(t *testing.T) {
	var client *Client
	if _, err := client.IncrWithTTL(context.Background(), "k", time.Second); err == nil {
		t.Fatal("expected error from nil client")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close on nil client should be a no-op, got %v", err)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.RateLimitKey("login", "ip", "10.0.0.1"); got != "backoffice:rate_limit:login:ip:10.0.0.1" {
		t.Fatalf("unexpected rate limit key %s", got)
	}
	if got := client.RateLimitKey("login", "", "admin"); got != "backoffice:rate_limit:login:admin" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
	if got := client.LockKey("cron:dev"); got != "backoffice:lock:cron:dev" {
		t.Fatalf("unexpected lock key %s", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected missing url to fail")
	}
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6379/2", PoolSize: 7, DialTimeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.DB != 2 || opts.PoolSize != 7 || opts.DialTimeout != 2*time.Second {
		t.Fatalf("unexpected options %+v", opts)
	}
}

type mockCmdable struct {
	data        map[string]string
	incr        map[string]int64
	expireCalls []expireCall
	scripts     []string
}

type expireCall struct {
	key string
	ttl time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: map[string]string{}, incr: map[string]int64{}}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) SetNX(_ context.Context, key string, value any, _ time.Duration) *redis.BoolCmd {
	if _, exists := m.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Incr(_ context.Context, key string) *redis.IntCmd {
	m.incr[key]++
	return redis.NewIntResult(m.incr[key], nil)
}

func (m *mockCmdable) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	m.expireCalls = append(m.expireCalls, expireCall{key: key, ttl: ttl})
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

// Eval understands only the compare-and-delete script.
func (m *mockCmdable) Eval(_ context.Context, script string, keys []string, args ...any) *redis.Cmd {
	m.scripts = append(m.scripts, script)
	if script != compareAndDeleteScript || len(keys) != 1 || len(args) != 1 {
		return redis.NewCmdResult(nil, fmt.Errorf("unexpected script call"))
	}
	if v, ok := m.data[keys[0]]; ok && v == fmt.Sprint(args[0]) {
		delete(m.data, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}
