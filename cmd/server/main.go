// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/LFalch/fellestrekk/internal/game"
	"github.com/LFalch/fellestrekk/internal/handlers"
	"github.com/LFalch/fellestrekk/internal/middleware"
	"github.com/LFalch/fellestrekk/internal/session"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	rules := rulesFromEnv(logger)
	store := session.NewStore(logger)

	mux := http.NewServeMux()

	// game websocket
	mux.Handle("/ws", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.WS(logger, store, rules),
	)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// rulesFromEnv builds the table rules, starting from the defaults and
// applying HIT_SOFT_17 and MAX_PLAYERS overrides.
func rulesFromEnv(logger *logrus.Logger) game.Rules {
	rules := game.DefaultRules()
	if v := os.Getenv("HIT_SOFT_17"); v != "" {
		hit, err := strconv.ParseBool(v)
		if err != nil {
			logger.WithField("HIT_SOFT_17", v).Warn("invalid value, keeping default")
		} else if hit {
			rules.Dealer = game.H17()
		} else {
			rules.Dealer = game.S17()
		}
	}
	if v := os.Getenv("MAX_PLAYERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.WithField("MAX_PLAYERS", v).Warn("invalid value, keeping default")
		} else {
			rules.MaxPlayers = n
		}
	}
	return rules
}
