package main

import (
	"flag"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	clientDir := flag.String("client", "", "Path to client directory (default: ../client)")
	dbPath := flag.String("db", "rockfall.db", "SQLite database path (empty disables accounts and run history)")
	configPath := flag.String("config", "", "Optional JSON file overriding simulation tuning")
	term := flag.Bool("term", false, "Play locally in the terminal instead of serving")
	seed := flag.Uint64("seed", 0, "RNG seed for -term runs (0 picks one)")
	flag.Parse()

	cfg := DefaultSimConfig()
	if *configPath != "" {
		var err error
		cfg, err = LoadSimConfig(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
	}

	if *term {
		s := *seed
		if s == 0 {
			s = rand.Uint64()
		}
		if err := RunTerminal(cfg, s); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	if *clientDir == "" {
		exe, _ := os.Executable()
		*clientDir = filepath.Join(filepath.Dir(exe), "..", "client")
		// Fallback for development
		if _, err := os.Stat(*clientDir); os.IsNotExist(err) {
			*clientDir = "../client"
		}
	}

	var db *DB
	if *dbPath != "" {
		var err error
		db, err = OpenDB(*dbPath)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
	}

	hub := NewHub(cfg, db)
	go hub.Run()
	defer hub.Close()

	mux := SetupRoutes(hub, *clientDir)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		log.Printf("Server starting on %s", *addr)
		log.Printf("Serving client files from %s", *clientDir)
		if db != nil {
			log.Printf("Using database %s", *dbPath)
		}
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down...")
	server.Close()
}
