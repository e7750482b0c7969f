// Package main is the entry point for the Pet Crossing engine server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/petcrossing/server/internal/domain/pet"
	"github.com/petcrossing/server/internal/events"
	"github.com/petcrossing/server/internal/infra/storage"
	"github.com/petcrossing/server/internal/network"
	"github.com/petcrossing/server/internal/platform/config"
	"github.com/petcrossing/server/internal/platform/logger"
	"github.com/petcrossing/server/internal/platform/metrics"
	"github.com/petcrossing/server/internal/session"
)

// saveStoreAdapter translates engine records to storage rows.
type saveStoreAdapter struct {
	repo *storage.SQLiteSaveRepository
}

func (a *saveStoreAdapter) Load(slot int) (*session.Record, error) {
	row, err := a.repo.GetBySlot(context.Background(), slot)
	if err != nil || row == nil {
		return nil, err
	}
	return &session.Record{
		Name:        row.Name,
		Species:     row.Species,
		Health:      row.Health,
		Hunger:      row.Hunger,
		Happiness:   row.Happiness,
		Sleep:       row.Sleep,
		State:       row.State,
		Apples:      row.Apples,
		Bananas:     row.Bananas,
		PurpleGifts: row.PurpleGifts,
		GreenGifts:  row.GreenGifts,
		Score:       row.Score,
	}, nil
}

func (a *saveStoreAdapter) Save(slot int, rec *session.Record) error {
	return a.repo.Upsert(context.Background(), storage.SaveRecord{
		Slot:        slot,
		Name:        rec.Name,
		Species:     rec.Species,
		Health:      rec.Health,
		Hunger:      rec.Hunger,
		Happiness:   rec.Happiness,
		Sleep:       rec.Sleep,
		State:       rec.State,
		Apples:      rec.Apples,
		Bananas:     rec.Bananas,
		PurpleGifts: rec.PurpleGifts,
		GreenGifts:  rec.GreenGifts,
		Score:       rec.Score,
	})
}

// journalPersisterAdapter writes journal entries through to SQLite.
type journalPersisterAdapter struct {
	repo *storage.SQLiteJournalRepository
}

func (a *journalPersisterAdapter) Append(entry events.Entry) error {
	return a.repo.Append(context.Background(), storage.JournalRow{
		ID:        entry.ID,
		Timestamp: entry.Timestamp,
		Kind:      string(entry.Kind),
		Slot:      entry.Slot,
		Detail:    entry.Detail,
	})
}

// parentalStoreAdapter persists parental settings.
type parentalStoreAdapter struct {
	repo *storage.SQLiteParentalRepository
}

func (a *parentalStoreAdapter) LoadParental() (*session.ParentalSettings, error) {
	row, err := a.repo.Get(context.Background())
	if err != nil || row == nil {
		return nil, err
	}
	return &session.ParentalSettings{
		Enabled:      row.Enabled,
		LimitMinutes: row.LimitMinutes,
		WindowStart:  row.WindowStart,
		WindowEnd:    row.WindowEnd,
	}, nil
}

func (a *parentalStoreAdapter) SaveParental(s *session.ParentalSettings) error {
	return a.repo.Put(context.Background(), storage.ParentalRow{
		Enabled:      s.Enabled,
		LimitMinutes: s.LimitMinutes,
		WindowStart:  s.WindowStart,
		WindowEnd:    s.WindowEnd,
	})
}

var (
	configPath string
	listenAddr string
	dbPath     string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "pet-server",
	Short: "Authoritative simulation server for Pet Crossing",
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (overrides config)")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level (overrides config)")
}

func serve() {
	appLogger := logger.NewLogger()

	cfg, err := config.Load(configPath)
	if err != nil {
		appLogger.Error("Failed to load config: " + err.Error())
		os.Exit(1)
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	appLogger.SetLevel(cfg.LogLevel)

	appLogger.Infof("Initializing SQLite database %q...", cfg.DBPath)
	db, err := storage.InitSQLite(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to initialize SQLite: " + err.Error())
		os.Exit(1)
	}
	defer db.Close()

	saveStore := &saveStoreAdapter{repo: storage.NewSQLiteSaveRepository(db)}
	journal := events.NewJournal(&journalPersisterAdapter{repo: storage.NewSQLiteJournalRepository(db)})
	dispatcher := events.NewDispatcher()

	opts := session.Options{
		TickInterval: cfg.TickInterval(),
		VetCooldown:  cfg.VetCooldown(),
		WalkCooldown: cfg.WalkCooldown(),
		PlayCooldown: cfg.PlayCooldown(),
	}
	coordinator := session.NewCoordinator(dispatcher, journal, saveStore, appLogger, opts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	coordinator.SetOnQuit(cancel)

	hub := network.NewHub(appLogger, coordinator.Publish)
	coordinator.SetListener(hub)
	go hub.Run(ctx)
	go coordinator.Run(ctx)

	parental := session.NewParental(appLogger, coordinator.Publish, &parentalStoreAdapter{repo: storage.NewSQLiteParentalRepository(db)})
	if err := parental.LoadSettings(); err != nil {
		appLogger.Warn(err.Error())
	}
	if !parental.Settings().Enabled && cfg.Parental.Enabled {
		bootSettings := session.ParentalSettings(cfg.Parental)
		if err := parental.Apply(&bootSettings); err != nil {
			appLogger.Warn(err.Error())
		}
	}
	go parental.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/metrics", metrics.Get().Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	registerSessionAPI(mux, coordinator, parental)

	server := &http.Server{Addr: cfg.ListenAddr, Handler: mux}
	go func() {
		appLogger.Infof("Listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed: " + err.Error())
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		appLogger.Info("Signal received, quitting")
		coordinator.Publish(events.KindQuit)
	case <-ctx.Done():
	}

	_ = server.Close()
	appLogger.Info("Server stopped")
}

// registerSessionAPI exposes the session flows the desktop shell drives:
// new game (override), load, revive, snapshot, and parental settings.
func registerSessionAPI(mux *http.ServeMux, c *session.Coordinator, p *session.Parental) {
	type slotRequest struct {
		Slot    int    `json:"slot"`
		Species string `json:"species"`
		Name    string `json:"name"`
	}

	readSlot := func(w http.ResponseWriter, r *http.Request) (slotRequest, bool) {
		var req slotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return req, false
		}
		return req, true
	}

	mux.HandleFunc("/api/session/new", func(w http.ResponseWriter, r *http.Request) {
		req, ok := readSlot(w, r)
		if !ok {
			return
		}
		if _, err := c.NewSession(req.Slot, pet.Species(req.Species), req.Name); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/api/session/load", func(w http.ResponseWriter, r *http.Request) {
		req, ok := readSlot(w, r)
		if !ok {
			return
		}
		loaded, err := c.LoadSlot(req.Slot)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if !loaded {
			http.Error(w, "no save in slot", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/api/session/revive", func(w http.ResponseWriter, r *http.Request) {
		req, ok := readSlot(w, r)
		if !ok {
			return
		}
		loaded, err := c.ReviveSlot(req.Slot)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if !loaded {
			http.Error(w, "no save in slot", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/api/session/snapshot", func(w http.ResponseWriter, r *http.Request) {
		snap, ok := c.Snapshot()
		if !ok {
			http.Error(w, "no active session", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(snap)
	})

	mux.HandleFunc("/api/parental", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(p.Settings())
		case http.MethodPost:
			var s session.ParentalSettings
			if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
				http.Error(w, "bad request", http.StatusBadRequest)
				return
			}
			if err := p.Apply(&s); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
