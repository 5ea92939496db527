package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
)

type ValkeyClient struct {
	Client valkey.Client
}

const (
	claimKeyPrefix    = "analysis:claim:"
	dashboardCacheKey = "dashboard:aggregates"
)

func InitValkey() *ValkeyClient {
	valkeyOnce.Do(func() {
		valkeyAddr := os.Getenv("VALKEY_INIT_ADDRESS")
		valkeyPassword := os.Getenv("VALKEY_PASSWORD")
		useTLS := os.Getenv("VALKEY_TLS") == "true"

		opts := valkey.ClientOption{
			InitAddress:      []string{valkeyAddr},
			Password:         valkeyPassword,
			ConnWriteTimeout: 5 * time.Second,
			SelectDB:         0,
		}
		if useTLS {
			opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
		}

		client, err := valkey.NewClient(opts)
		if err != nil {
			panic(fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		if resp := client.Do(ctx, client.B().Ping().Build()); resp.Error() != nil {
			panic(fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", resp.Error()))
		}

		slog.Info("[ValkeyClient] Successfully connected to valkey")
		valkeyInstance = &ValkeyClient{Client: client}
	})
	return valkeyInstance
}

// AcquireClaim takes the per-sample analysis claim with SET NX EX. A
// false return means another worker already holds it. The TTL is the
// crash guard: an abandoned claim expires on its own.
func (vc *ValkeyClient) AcquireClaim(ctx context.Context, sampleID string, ttl time.Duration) (bool, error) {
	resp := vc.Client.Do(ctx, vc.Client.B().
		Set().Key(claimKeyPrefix+sampleID).Value("1").Nx().Ex(ttl).Build())
	if err := resp.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, fmt.Errorf("[ValkeyClient] failed to acquire claim: %w", err)
	}
	return true, nil
}

func (vc *ValkeyClient) ReleaseClaim(ctx context.Context, sampleID string) error {
	resp := vc.Client.Do(ctx, vc.Client.B().Del().Key(claimKeyPrefix+sampleID).Build())
	if err := resp.Error(); err != nil {
		return fmt.Errorf("[ValkeyClient] failed to release claim: %w", err)
	}
	return nil
}

// CacheDashboard stores the rendered dashboard aggregate payload for a
// short window so chart refreshes do not re-scan the whole collection.
func (vc *ValkeyClient) CacheDashboard(ctx context.Context, payload []byte, ttl time.Duration) error {
	resp := vc.Client.Do(ctx, vc.Client.B().
		Set().Key(dashboardCacheKey).Value(string(payload)).Ex(ttl).Build())
	if err := resp.Error(); err != nil {
		return fmt.Errorf("[ValkeyClient] failed to cache dashboard: %w", err)
	}
	return nil
}

// CachedDashboard returns the cached payload, or nil on a miss.
func (vc *ValkeyClient) CachedDashboard(ctx context.Context) ([]byte, error) {
	resp := vc.Client.Do(ctx, vc.Client.B().Get().Key(dashboardCacheKey).Build())
	payload, err := resp.AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("[ValkeyClient] failed to read dashboard cache: %w", err)
	}
	return payload, nil
}

func (vc *ValkeyClient) Close() {
	if vc.Client != nil {
		vc.Client.Close()
	}
}
