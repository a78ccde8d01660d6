package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vitos/crypto_market_view/internal/infrastructure/logger"
	"github.com/vitos/crypto_market_view/internal/infrastructure/provider"
	"github.com/vitos/crypto_market_view/internal/infrastructure/storage"
	"github.com/vitos/crypto_market_view/internal/usecase"
	"github.com/vitos/crypto_market_view/internal/web"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port    int    `yaml:"port"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"server"`
	Provider struct {
		BaseURL   string `yaml:"base_url"`
		RefreshMs int    `yaml:"refresh_ms"`
	} `yaml:"provider"`
	Cache struct {
		Path string `yaml:"path"`
	} `yaml:"cache"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

func loadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv lets environment variables override file values, so deployments
// can keep one config file per environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("CATALOG_DB"); v != "" {
		cfg.Cache.Path = v
	}
}

func main() {
	// 1. Load Config (.env first, then yaml, then env overrides)
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyEnv(cfg)

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	if cfg.Provider.RefreshMs == 0 {
		cfg.Provider.RefreshMs = 60000
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = "catalog.db"
	}

	// 2. Init Logger
	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 3. Init Catalog Cache
	store, err := storage.NewSQLiteStore(cfg.Cache.Path)
	if err != nil {
		log.Fatal("Failed to init catalog cache", zap.Error(err))
	}
	defer store.Close()

	// 4. Init Provider (CoinGecko)
	gecko := provider.NewCoinGeckoClient(cfg.Provider.BaseURL, log)

	// 5. Init Services
	resolver := usecase.NewResolver(gecko, store, log)
	market := usecase.NewMarketService(gecko, resolver, log)

	// 6. Init Web Server
	refreshEvery := time.Duration(cfg.Provider.RefreshMs) * time.Millisecond
	server := web.NewServer(cfg.Server.Port, market, refreshEvery, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Web server failed", zap.Error(err))
		}
	}()
	log.Info("Serving", zap.String("base_url", cfg.Server.BaseURL))

	// 7. Wait for Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Shutdown error", zap.Error(err))
	}
}
