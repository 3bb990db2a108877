/*
Package main
File: main.go
Description:
    Entry point for the STREETS: HEAT INDEX simulation server. Wires the
    environment, tuning file, save store, day log, websocket hub and HTTP
    surface together, restores the latest save if one exists, and saves
    the session again on shutdown.
*/

package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/everforgeworks/streets-heat-index/internal/api"
	"github.com/everforgeworks/streets-heat-index/internal/config"
	"github.com/everforgeworks/streets-heat-index/internal/game"
	"github.com/everforgeworks/streets-heat-index/internal/persistence"
)

// autosaveInterval is how often the running session is snapshotted to the
// save store in the background.
const autosaveInterval = 5 * time.Minute

func main() {
	log.Println("=========================================")
	log.Println("  STREETS: HEAT INDEX - Simulation Server")
	log.Println("=========================================")

	env := config.Load()

	// 1. Load the tuning file; fall back to built-in defaults if missing.
	tuning, err := game.LoadTuning(env.TuningPath)
	if err != nil {
		log.Printf("Could not load %s (%v), using built-in tuning", env.TuningPath, err)
		tuning = game.DefaultTuning()
	}

	seed := env.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	session := game.NewSession(tuning, seed)
	log.Printf("Session seeded with %d: %d regions, %d rivals", seed, len(tuning.Regions), len(tuning.Rivals))

	// 2. Open the save store and pick up where the last run left off.
	store, err := persistence.Open(env.SavePath)
	if err != nil {
		log.Fatalf("Failed to open save store: %v", err)
	}
	defer store.Close()

	if latest, err := store.Latest(); err != nil {
		log.Printf("Could not check for saves: %v", err)
	} else if latest != nil {
		if err := session.RestoreState(latest.State); err != nil {
			log.Printf("Ignoring unreadable save %s: %v", latest.ID, err)
		} else {
			log.Printf("Restored save %s (day %d)", latest.ID, latest.Day)
		}
	}

	// 3. Attach the compressed day log.
	dayLog, err := persistence.NewDayLog(env.LogDir)
	if err != nil {
		log.Printf("Day logging disabled: %v", err)
	} else {
		session.SetDayLogger(dayLog)
		defer dayLog.Close()
	}

	// 4. Start the websocket hub and HTTP surface.
	hub := api.NewHub()
	go hub.Run()

	server := api.NewServer(session, hub)
	handler := corsMiddleware(server.Routes())

	// 5. Background autosave.
	go func() {
		ticker := time.NewTicker(autosaveInterval)
		defer ticker.Stop()
		for range ticker.C {
			saveSession(store, session)
		}
	}()

	// 6. Save once more on shutdown.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Println("Shutting down, saving session...")
		saveSession(store, session)
		if dayLog != nil {
			dayLog.Close()
		}
		os.Exit(0)
	}()

	addr := ":" + env.Port
	log.Printf("Listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func saveSession(store *persistence.Store, session *game.Session) {
	state, err := session.MarshalState()
	if err != nil {
		log.Printf("Autosave failed to marshal: %v", err)
		return
	}
	id, err := store.Put("autosave", session.CurrentDay(), state)
	if err != nil {
		log.Printf("Autosave failed to write: %v", err)
		return
	}
	log.Printf("Saved session as %s (day %d)", id, session.CurrentDay())
}

// corsMiddleware allows the browser client to talk to the API from any
// origin during development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
