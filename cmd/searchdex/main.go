package main

import (
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/caarlos0/env/v11"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/ab1manyu/PokedexChallenge/internal/game"
	"github.com/ab1manyu/PokedexChallenge/internal/pokeapi"
	"github.com/ab1manyu/PokedexChallenge/internal/service"
	"github.com/ab1manyu/PokedexChallenge/internal/store"
	"github.com/ab1manyu/PokedexChallenge/internal/tui"
)

type config struct {
	StoreEngine       string `env:"SEARCHDEX_STORE" envDefault:"json"`
	DataFile          string `env:"SEARCHDEX_DATA_FILE"`
	CaptureMode       string `env:"SEARCHDEX_CAPTURE_MODE" envDefault:"weighted"`
	APIBaseURL        string `env:"SEARCHDEX_API_BASE_URL"`
	APITimeoutSeconds int    `env:"SEARCHDEX_API_TIMEOUT_SECONDS" envDefault:"10"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env loaded: %v", err)
	}

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse config failed: %v", err)
	}
	if cfg.DataFile == "" {
		cfg.DataFile = defaultDataFile(cfg.StoreEngine)
	}

	st, err := store.NewByEngine(cfg.StoreEngine, cfg.DataFile)
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}
	if closer, ok := st.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Printf("store close failed: %v", err)
			}
		}()
	}

	catalog := pokeapi.NewClient(pokeapi.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: time.Duration(cfg.APITimeoutSeconds) * time.Second,
	})
	resolver := game.NewResolver(
		game.CaptureMode(cfg.CaptureMode),
		rand.NewSource(time.Now().UnixNano()),
	)
	svc := service.New(st, catalog, resolver, nil)

	program := tea.NewProgram(tui.New(svc), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("searchdex failed: %v", err)
	}
}

func defaultDataFile(engine string) string {
	switch engine {
	case store.EngineSQLite:
		return "data/searchdex.db"
	default:
		return "data/searchdex.json"
	}
}
