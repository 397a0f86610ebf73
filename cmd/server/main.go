package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lineaged/internal/config"
	"lineaged/internal/handler"
	"lineaged/internal/repository/sqlite"
	"lineaged/internal/service"
)

func main() {
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	configPath := flag.String("config", "", "Config file path")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting lineaged server...")

	// Load configuration
	var (
		cfg     *config.Config
		cfgPath string
		err     error
	)
	if *configPath != "" {
		cfg, cfgPath, err = config.LoadFromPath(*configPath)
	} else {
		cfg, cfgPath, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfgPath != "" {
		log.Printf("Config loaded: %s", cfgPath)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	// Initialize SQLite repository
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer repo.Close()
	log.Printf("Database opened: %s", cfg.Database.Path)

	// Initialize event bus
	eventBus := service.NewEventBus()

	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go func() {
		for event := range eventChan {
			log.Printf("Event: %s", event.Type)
		}
	}()

	// Initialize service
	treeSvc := service.NewTreeService(repo, eventBus)
	treeSvc.SetMaxReportIssues(cfg.Import.MaxReportIssues)

	// Initialize HTTP handlers
	treeHandler := handler.NewTreeHandler(treeSvc)

	// Setup routes
	mux := http.NewServeMux()

	// GEDCOM endpoints
	mux.HandleFunc("POST /api/gedcom/validate", treeHandler.ValidateGEDCOM)
	mux.HandleFunc("POST /api/gedcom/import", treeHandler.ImportGEDCOM)
	mux.HandleFunc("GET /api/export/gedcom", treeHandler.ExportGEDCOM)

	// YAML endpoints
	mux.HandleFunc("POST /api/import/yaml", treeHandler.ImportYAML)
	mux.HandleFunc("GET /api/export/yaml", treeHandler.ExportYAML)

	// Person endpoints
	mux.HandleFunc("GET /api/persons", treeHandler.ListPersons)
	mux.HandleFunc("POST /api/persons", treeHandler.CreatePerson)
	mux.HandleFunc("GET /api/persons/{id}", treeHandler.GetPerson)
	mux.HandleFunc("PUT /api/persons/{id}", treeHandler.UpdatePerson)
	mux.HandleFunc("DELETE /api/persons/{id}", treeHandler.DeletePerson)

	// Family endpoints
	mux.HandleFunc("GET /api/families", treeHandler.ListFamilies)
	mux.HandleFunc("POST /api/families", treeHandler.CreateFamily)
	mux.HandleFunc("GET /api/families/{id}", treeHandler.GetFamily)
	mux.HandleFunc("DELETE /api/families/{id}", treeHandler.DeleteFamily)

	// Tree endpoints
	mux.HandleFunc("GET /api/tree", treeHandler.GetTree)
	mux.HandleFunc("DELETE /api/tree", treeHandler.ClearTree)
	mux.HandleFunc("GET /api/stats", treeHandler.GetStats)

	// Apply middleware
	finalHandler := handler.Chain(mux,
		handler.Recover,
		handler.CORS,
		handler.Logger,
	)

	// Create server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      finalHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
