package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ChamsBouzaiene/voyager/internal/config"
	"github.com/ChamsBouzaiene/voyager/internal/itinerary"
	"github.com/ChamsBouzaiene/voyager/internal/session"
	"github.com/ChamsBouzaiene/voyager/internal/tools"
	"github.com/ChamsBouzaiene/voyager/internal/tools/activities"
	"github.com/ChamsBouzaiene/voyager/internal/tools/flights"
	"github.com/ChamsBouzaiene/voyager/internal/tools/hotels"
)

type runtimeEnv struct {
	Itineraries *itinerary.Store
	Sessions    *session.Store
	Clients     tools.Clients
	DataDir     string
}

func (r *runtimeEnv) Close() {
	if r.Itineraries != nil {
		r.Itineraries.Close()
	}
}

// prepareRuntimeEnv loads the stored configuration, exports it into the
// environment, and wires up the stores and search clients.
func prepareRuntimeEnv(ctx context.Context, dataFlag string) (*runtimeEnv, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config manager: %w", err)
	}

	cfg, err := manager.Load()
	if err != nil {
		log.Printf("failed to load user config: %v (continuing with environment only)", err)
		cfg = &config.Config{}
	} else if manager.Exists() {
		log.Printf("user config loaded from: %s", manager.GetConfigPath())
	}
	cfg.ApplyToEnv()

	dataDir := dataFlag
	if dataDir == "" {
		dataDir = manager.DataDir()
	}

	repo, err := buildRepository(ctx, cfg.Storage, dataDir)
	if err != nil {
		return nil, err
	}

	return &runtimeEnv{
		Itineraries: itinerary.NewStore(repo),
		Sessions:    session.NewStore(dataDir),
		Clients:     buildSearchClients(),
		DataDir:     dataDir,
	}, nil
}

func buildRepository(ctx context.Context, storage, dataDir string) (itinerary.Repository, error) {
	switch storage {
	case "", "file":
		repo, err := itinerary.NewFileRepository(dataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open itinerary directory: %w", err)
		}
		return repo, nil
	case "sqlite":
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		repo, err := itinerary.NewSQLiteRepository(ctx, filepath.Join(dataDir, "itineraries.db"))
		if err != nil {
			return nil, fmt.Errorf("failed to open itinerary database: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s (supported: file, sqlite)", storage)
	}
}

// buildSearchClients creates a client per configured provider key.
// A missing key disables that search category rather than failing startup.
func buildSearchClients() tools.Clients {
	var clients tools.Clients

	if key := os.Getenv("DUFFEL_API_KEY"); key != "" {
		clients.Flights = flights.NewClient(key)
	} else {
		log.Println("DUFFEL_API_KEY not set, flight search disabled")
	}

	if key := os.Getenv("SERPAPI_API_KEY"); key != "" {
		clients.Hotels = hotels.NewClient(key)
		clients.Activities = activities.NewClient(key, os.Getenv("OPENWEATHER_API_KEY"))
	} else {
		log.Println("SERPAPI_API_KEY not set, hotel and activity search disabled")
	}

	return clients
}
