package main

import (
	"log/slog"
	"os"
	"strings"

	_ "time/tzdata"

	"github.com/gin-gonic/gin"

	"github.com/futsalboard/server/internal/config"
	"github.com/futsalboard/server/internal/db"
	"github.com/futsalboard/server/internal/engine"
	"github.com/futsalboard/server/internal/httpapi"
	"github.com/futsalboard/server/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "err", err)
		os.Exit(1)
	}

	var kv engine.KV
	if cfg.Persist {
		sqlDB, err := db.Open(cfg.DBPath)
		if err != nil {
			log.Error("open db", "err", err)
			os.Exit(1)
		}
		defer sqlDB.Close()

		if err := db.Migrate(sqlDB); err != nil {
			log.Error("migrate", "err", err)
			os.Exit(1)
		}
		gdb, err := db.Gorm(sqlDB)
		if err != nil {
			log.Error("init gorm", "err", err)
			os.Exit(1)
		}
		kv = store.New(gdb)
	}

	eng := engine.New(log, kv, cfg.RequireFormation)
	eng.Load()
	defer eng.Shutdown()

	r := gin.Default()
	tp := strings.Split(cfg.TrustedProxies, ",")
	for i := range tp {
		tp[i] = strings.TrimSpace(tp[i])
	}
	if err := r.SetTrustedProxies(tp); err != nil {
		log.Error("trusted proxies", "err", err)
		os.Exit(1)
	}

	httpapi.RegisterRoutes(r, eng, nil)

	log.Info("listening", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Error("server", "err", err)
		os.Exit(1)
	}
}
