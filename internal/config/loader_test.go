package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/quarterback/viperball-sub000/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"VIPERBALL_CONFIG",
	"VIPERBALL_LOG_LEVEL",
	"VIPERBALL_SEED",
	"VIPERBALL_SNAPSHOT_PATH",
	"VIPERBALL_PREFERENCE_DEPTH",
	"VIPERBALL_ITERATION_FACTOR",
	"VIPERBALL_MIN_POOL_SIZE",
	"VIPERBALL_POOL_MULTIPLIER",
}

func clearConfigEnvVars() {
	for _, name := range configEnvVars {
		_ = os.Unsetenv(name)
	}
}

func writeConfigFile(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "viperball.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfig_New(t *testing.T) {
	convey.Convey("Given the default config", t, func() {
		cfg := config.New()

		convey.Convey("Then it should carry the documented defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Seed, convey.ShouldEqual, 7)
			convey.So(cfg.PreferenceDepth, convey.ShouldEqual, 5)
			convey.So(cfg.IterationFactor, convey.ShouldEqual, 20)
			convey.So(cfg.MinPoolSize, convey.ShouldEqual, 15)
			convey.So(cfg.PoolMultiplier, convey.ShouldEqual, 2)
			convey.So(cfg.FreeAgentPrestigeMin, convey.ShouldEqual, 35.0)
			convey.So(cfg.FreeAgentPrestigeMax, convey.ShouldEqual, 75.0)
			convey.So(cfg.OutputPath, convey.ShouldBeEmpty)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("VIPERBALL_SEED", "42")
			_ = os.Setenv("VIPERBALL_PREFERENCE_DEPTH", "3")
			_ = os.Setenv("VIPERBALL_LOG_LEVEL", "debug")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Seed, convey.ShouldEqual, 42)
				convey.So(cfg.PreferenceDepth, convey.ShouldEqual, 3)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.IterationFactor, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := writeConfigFile(t, `
seed: 99
snapshot_path: league.yaml
iteration_factor: 30
min_pool_size: 10
`)
			_ = os.Setenv("VIPERBALL_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Seed, convey.ShouldEqual, 99)
				convey.So(cfg.SnapshotPath, convey.ShouldEqual, "league.yaml")
				convey.So(cfg.IterationFactor, convey.ShouldEqual, 30)
				convey.So(cfg.MinPoolSize, convey.ShouldEqual, 10)
				convey.So(cfg.PoolMultiplier, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When both file and env set a key", func() {
			path := writeConfigFile(t, "seed: 99\n")
			_ = os.Setenv("VIPERBALL_CONFIG", path)
			_ = os.Setenv("VIPERBALL_SEED", "5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env should win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Seed, convey.ShouldEqual, 5)
			})
		})
	})
}

func TestConfigLoaderEdgeCases(t *testing.T) {
	convey.Convey("Given invalid configuration sources", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("VIPERBALL_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should fail to load", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the file is not valid YAML", func() {
			_ = os.Setenv("VIPERBALL_CONFIG", writeConfigFile(t, "seed: [unterminated\n"))
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should fail to load", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a knob is out of range", func() {
			_ = os.Setenv("VIPERBALL_ITERATION_FACTOR", "0")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should be rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the solver budget is below the preference depth", func() {
			cfg := config.New()
			cfg.PreferenceDepth = 8
			cfg.IterationFactor = 6

			convey.Convey("Then validation should fail", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})

			convey.Convey("Then a budget equal to the depth should pass", func() {
				cfg.IterationFactor = 8
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the free agent prestige range is empty", func() {
			cfg := config.New()
			cfg.FreeAgentPrestigeMin = 60
			cfg.FreeAgentPrestigeMax = 60

			convey.Convey("Then validation should fail", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the pool floor is negative", func() {
			cfg := config.New()
			cfg.MinPoolSize = -1

			convey.Convey("Then validation should fail", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
