package main

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"

	app "github.com/okian/simreveal/internal/app"
	"github.com/okian/simreveal/internal/config"
	"github.com/okian/simreveal/pkg/logger"
	"github.com/okian/simreveal/pkg/metrics"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		_ = logger.Init()

		convey.Convey("When loading configuration from the environment", func() {
			_ = os.Setenv("SIMREVEAL_ADDR", ":8080")
			_ = os.Setenv("SIMREVEAL_UPDATE_QUEUE_SIZE", "16")
			_ = os.Setenv("SIMREVEAL_ADMIN_TOKEN", "token")
			defer func() {
				_ = os.Unsetenv("SIMREVEAL_ADDR")
				_ = os.Unsetenv("SIMREVEAL_UPDATE_QUEUE_SIZE")
				_ = os.Unsetenv("SIMREVEAL_ADMIN_TOKEN")
			}()

			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.UpdateQueueSize, convey.ShouldEqual, 16)
			convey.So(cfg.AdminToken, convey.ShouldEqual, "token")
		})

		convey.Convey("When building the service without a feed", func() {
			svc, closeFeed, err := newService(config.New(context.Background()), logger.Nop())
			convey.So(err, convey.ShouldBeNil)
			convey.So(svc, convey.ShouldNotBeNil)
			closeFeed()
			convey.So(svc.GetStats()["poller"], convey.ShouldEqual, false)
		})

		convey.Convey("When building the service with a feed", func() {
			cfg := config.New(context.Background())
			cfg.RedisURL = "redis://localhost:6379/0"
			svc, closeFeed, err := newService(cfg, logger.Nop())
			convey.So(err, convey.ShouldBeNil)
			defer closeFeed()
			convey.So(svc.GetStats()["poller"], convey.ShouldEqual, true)
		})

		convey.Convey("When the redis url is malformed", func() {
			cfg := config.New(context.Background())
			cfg.RedisURL = "mysql://nope"
			_, _, err := newService(cfg, logger.Nop())
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestRouter(t *testing.T) {
	convey.Convey("Given the assembled router", t, func() {
		cfg := config.New(context.Background())
		svc := app.New(app.WithLogger(logger.Nop()))
		h := newRouter(cfg, svc, logger.Nop())

		for _, path := range []string{"/healthz", "/stats", "/openapi.yaml", "/api-docs"} {
			req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
		}

		convey.Convey("Then league routes answer through the service", func() {
			req := httptest.NewRequest(http.MethodGet, "/v1/leagues/nfl/games", http.NoBody)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a free port", t, func() {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		convey.So(err, convey.ShouldBeNil)
		addr := ln.Addr().String()
		_ = ln.Close()

		cfg := config.New(context.Background())
		cfg.Addr = addr
		cfg.ShutdownTimeoutMS = 1000

		convey.Convey("When running until cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- run(ctx, cfg, logger.Nop()) }()

			up := false
			for i := 0; i < 100 && !up; i++ {
				resp, err := http.Get("http://" + addr + "/stats") //nolint:noctx // test probe
				if err == nil {
					_ = resp.Body.Close()
					up = resp.StatusCode == http.StatusOK
				} else {
					time.Sleep(10 * time.Millisecond)
				}
			}
			cancel()

			convey.So(up, convey.ShouldBeTrue)
			select {
			case err := <-done:
				convey.So(err, convey.ShouldBeNil)
			case <-time.After(5 * time.Second):
				convey.So("run did not return", convey.ShouldBeEmpty)
			}
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When the system metrics updater is cancelled", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.So(func() {
				startSystemMetricsUpdater(ctx)
			}, convey.ShouldNotPanic)
		})

		convey.Convey("When the service metrics updater is cancelled", func() {
			svc := app.New(app.WithLogger(logger.Nop()))
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.So(func() {
				startServiceMetricsUpdater(ctx, svc)
			}, convey.ShouldNotPanic)
		})

		convey.Convey("When updating metrics directly", func() {
			svc := app.New(app.WithLogger(logger.Nop()))
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
		})

		convey.Convey("When creating a metrics manager on its own registry", func() {
			manager := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
			convey.So(manager, convey.ShouldNotBeNil)
		})
	})
}
