//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront-cart/cmd/bootstrap"
	"storefront-cart/cmd/bootstrap/components"
	"storefront-cart/internal/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

var (
	redisContainerOnce sync.Once
	redisTestContainer testcontainers.Container
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

// Collaborators are the stubbed external services the cart talks to. Tests
// adjust Coupons and Orders to shape the verdicts the app receives.
type Collaborators struct {
	// Coupons maps coupon code to discount percentage. Unknown codes get an
	// inactive verdict, mirroring the real validator.
	Coupons map[string]float64

	// SubmittedOrders records every order draft the app posted.
	mu              sync.Mutex
	SubmittedOrders []map[string]any

	// FailOrders makes the order collaborator answer 500.
	FailOrders bool

	couponServer *httptest.Server
	orderServer  *httptest.Server
}

func (c *Collaborators) RecordedOrders() []map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]map[string]any{}, c.SubmittedOrders...)
}

// ------------------------------------------------------------
// Per-test-process environment setup
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T) (*gin.Engine, config.Config, *Collaborators) {
	redisInfo := startContainers(t)
	collaborators := startCollaborators(t)

	cfg := createTestConfig(redisInfo, collaborators)
	router, app := buildE2EApp(cfg)
	require.NotNil(t, router, "failed to set up router")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx application", "error", err.Error())
		}
	})

	slog.Info("e2e environment ready",
		"redis_host", redisInfo.Host,
		"redis_port", redisInfo.Port.Port())

	return router, cfg, collaborators
}

// ------------------------------------------------------------
// Container startup
// ------------------------------------------------------------
func startContainers(t *testing.T) ContainerInfo {
	gin.SetMode(gin.TestMode)
	startRedisContainerOnce(t)

	redisInfo, err := getContainerHostPort(redisTestContainer, "6379/tcp")
	require.NoError(t, err, "failed to read redis container info")

	return redisInfo
}

// ------------------------------------------------------------
// Collaborator stubs
// ------------------------------------------------------------
func startCollaborators(t *testing.T) *Collaborators {
	c := &Collaborators{
		Coupons: map[string]float64{
			"DISCOUNT10": 10,
			"SAVE20":     20,
		},
	}

	c.couponServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/coupons/apply-coupon" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var body struct {
			CouponName string `json:"coupon_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if pct, ok := c.Coupons[body.CouponName]; ok {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"name":       body.CouponName,
				"message":    "Discount applied",
				"percentage": pct,
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name":       "",
			"message":    "Invalid coupon",
			"percentage": 0,
		})
	}))

	c.orderServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c.FailOrders {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var draft map[string]any
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		c.mu.Lock()
		c.SubmittedOrders = append(c.SubmittedOrders, draft)
		c.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"order_id": uuid.New().String()})
	}))

	t.Cleanup(func() {
		c.couponServer.Close()
		c.orderServer.Close()
	})

	return c
}

// ------------------------------------------------------------
// E2E application assembly
// Returns router and fx.App for proper lifecycle management
// ------------------------------------------------------------
func buildE2EApp(cfg config.Config) (*gin.Engine, *fx.App) {
	var router *gin.Engine

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config { return cfg }),
	)

	app := fx.New(
		testConfigModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.StateModule,
		components.CollaboratorModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router),

		// Boot quietly
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start fx app: %v", err))
	}

	if router == nil {
		panic("failed to start fx application")
	}

	return router, app
}

func createTestConfig(redisInfo ContainerInfo, collaborators *Collaborators) config.Config {
	cfg := config.NewTestConfig()
	cfg.Coupon.BaseURL = collaborators.couponServer.URL
	cfg.Order.SubmitURL = collaborators.orderServer.URL + "/orders"
	cfg.State.Backend = "redis"
	cfg.State.RedisAddr = redisInfo.Host + ":" + redisInfo.Port.Port()
	// Unique key per test process so parallel packages never share state
	cfg.State.Key = "storefront-cart-e2e-" + strings.ReplaceAll(uuid.New().String(), "-", "")
	return cfg
}

// ------------------------------------------------------------
// Container helpers
// ------------------------------------------------------------
func startGenericContainer(req testcontainers.ContainerRequest, timeoutSec int) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

// ------------------------------------------------------------
// Start the redis container once and reuse it across suites
// ------------------------------------------------------------
func startRedisContainerOnce(t *testing.T) {
	redisContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
			Name:         "redis-e2e",
			Labels:       map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		redisTestContainer, err = startGenericContainer(req, 180)
		require.NoError(t, err, "failed to start redis container")

		t.Cleanup(func() {
			if redisTestContainer != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := redisTestContainer.Terminate(ctx); err != nil {
					slog.Warn("failed to terminate redis container", "error", err.Error())
				}
			}
		})
	})
}

func getContainerHostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mappedPort}, nil
}

// ------------------------------------------------------------
// Shared suite setup
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router        *gin.Engine
	Config        config.Config
	Collaborators *Collaborators
	Redis         *redis.Client
}

func (s *SharedSuite) SetupSharedSuite(t *testing.T) {
	router, cfg, collaborators := setupE2EEnvironment(t)
	s.Router = router
	s.Config = cfg
	s.Collaborators = collaborators
	s.Redis = redis.NewClient(&redis.Options{Addr: cfg.State.RedisAddr})
	require.NotNil(t, s.Router, "failed to set up router")
	require.NotEmpty(t, s.Config, "failed to obtain config")

	t.Cleanup(func() {
		_ = s.Redis.Close()
	})
}

func (s *SharedSuite) SetupSuite() {
	s.SetupSharedSuite(s.T())
}
