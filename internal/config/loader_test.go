package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/okian/simreveal/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{ //nolint:gochecknoglobals // test fixture
	"SIMREVEAL_CONFIG",
	"SIMREVEAL_ADDR",
	"SIMREVEAL_LOG_LEVEL",
	"SIMREVEAL_LOG_FORMAT",
	"SIMREVEAL_ADMIN_TOKEN",
	"SIMREVEAL_CORS_ORIGINS",
	"SIMREVEAL_UPDATE_QUEUE_SIZE",
	"SIMREVEAL_REDIS_URL",
	"SIMREVEAL_POLL_INTERVAL_MS",
}

func clearConfigEnvVars() {
	for _, k := range configEnvVars {
		_ = os.Unsetenv(k)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	f, err := os.CreateTemp(t.TempDir(), "simreveal-*.yaml")
	if err != nil {
		t.Fatalf("create temp config: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	_ = f.Close()
	return f.Name()
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.UpdateQueueSize, convey.ShouldEqual, 1024)
				convey.So(cfg.PollIntervalMS, convey.ShouldEqual, 5000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SIMREVEAL_ADDR", ":8080")
			_ = os.Setenv("SIMREVEAL_UPDATE_QUEUE_SIZE", "64")
			_ = os.Setenv("SIMREVEAL_ADMIN_TOKEN", "s3cret")
			_ = os.Setenv("SIMREVEAL_CORS_ORIGINS", "https://a.example, https://b.example")
			_ = os.Setenv("SIMREVEAL_REDIS_URL", "redis://localhost:6379/1")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.UpdateQueueSize, convey.ShouldEqual, 64)
				convey.So(cfg.AdminToken, convey.ShouldEqual, "s3cret")
				convey.So(cfg.RedisURL, convey.ShouldEqual, "redis://localhost:6379/1")
				convey.So(cfg.CORSOrigins, convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := createTempConfigFile(t, `
addr: ":9090"
log_format: json
update_queue_size: 32
poll_interval_ms: 250
cors_origins:
  - https://league.example
`)
			_ = os.Setenv("SIMREVEAL_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.UpdateQueueSize, convey.ShouldEqual, 32)
				convey.So(cfg.PollIntervalMS, convey.ShouldEqual, 250)
				convey.So(cfg.CORSOrigins, convey.ShouldResemble, []string{"https://league.example"})
			})

			convey.Convey("Then env vars take precedence over the file", func() {
				_ = os.Setenv("SIMREVEAL_ADDR", ":7070")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.UpdateQueueSize, convey.ShouldEqual, 32)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("SIMREVEAL_CONFIG", "/non/existent/file.yaml")
			_, err := config.Load(ctx)
			convey.So(err, convey.ShouldWrap, config.ErrLoadConfig)
		})

		convey.Convey("When a numeric env var is malformed", func() {
			_ = os.Setenv("SIMREVEAL_UPDATE_QUEUE_SIZE", "lots")
			_, err := config.Load(ctx)
			convey.So(err, convey.ShouldWrap, config.ErrLoadConfig)
		})

		convey.Convey("When a value fails validation", func() {
			_ = os.Setenv("SIMREVEAL_LOG_FORMAT", "xml")
			_, err := config.Load(ctx)
			convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
		})
	})
}
