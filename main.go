package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dailypuzzles/internal/bank"
	"github.com/robalobadob/dailypuzzles/internal/httpserver"
	"github.com/robalobadob/dailypuzzles/internal/kv"
	"github.com/robalobadob/dailypuzzles/internal/puzzle"
	"github.com/robalobadob/dailypuzzles/internal/store"
)

// Sessions live for one page load; anything older than a day is stale.
const sessionMaxAge = 24 * time.Hour

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	b, err := bank.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load puzzle banks")
	}
	answers, allowed, riddles := b.Stats()
	log.Info().Int("answers", answers).Int("allowed", allowed).Int("riddles", riddles).Msg("banks loaded")

	prefs, closeKV, err := openKV()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer closeKV()

	loc := time.Local
	if tz := os.Getenv("PUZZLE_TZ"); tz != "" {
		if loc, err = time.LoadLocation(tz); err != nil {
			log.Fatal().Err(err).Str("tz", tz).Msg("bad PUZZLE_TZ")
		}
	}

	svc := puzzle.NewService(b, prefs,
		puzzle.WithLocation(loc),
		puzzle.WithProductName(getEnv("PRODUCT_NAME", puzzle.DefaultProductName)))
	sessions := store.NewMemoryStore()
	srv := httpserver.New(svc, sessions, b, httpserver.Options{
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go sweep(ctx, sessions, srv)

	addr := net.JoinHostPort(getEnv("BIND_ADDR", "127.0.0.1"), getEnv("PORT", "5175"))
	hs := &http.Server{Addr: addr, Handler: srv.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdownCtx)
	}()

	today := svc.Today()
	log.Info().Str("addr", addr).Str("date", today.Date).Str("mode", string(today.Mode)).Msg("starting daily puzzles")
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// openKV picks the durable store for streak and theme from STORE.
func openKV() (kv.Store, func(), error) {
	switch getEnv("STORE", "sqlite") {
	case "memory":
		log.Warn().Msg("using in-memory store; streak and theme reset on restart")
		return kv.NewMemory(), func() {}, nil
	default:
		path := getEnv("DB_PATH", "./data/puzzles.db")
		db, err := kv.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", path).Msg("sqlite store ready")
		return db, func() { _ = db.Close() }, nil
	}
}

// sweep drops stale sessions and idle rate-limit clients every hour.
func sweep(ctx context.Context, st store.Store, srv *httpserver.Server) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := st.Sweep(ctx, now.Add(-sessionMaxAge)); n > 0 {
				log.Debug().Int("swept", n).Msg("dropped stale sessions")
			}
			if n := srv.PruneClients(now.Add(-time.Hour)); n > 0 {
				log.Debug().Int("pruned", n).Msg("dropped idle rate-limit clients")
			}
		}
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
