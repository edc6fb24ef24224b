package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"green-route-service/internal/adapters/cache"
	"green-route-service/internal/adapters/conditions"
	"green-route-service/internal/adapters/registry"
	"green-route-service/internal/adapters/repositories"
	"green-route-service/internal/api"
	"green-route-service/internal/api/handlers"
	"green-route-service/internal/config"
	"green-route-service/internal/platform/db"
	"green-route-service/internal/platform/metrics"
	"green-route-service/internal/ports"
	"green-route-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Redis, Postgres, conditions feed) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	defaultRegion := config.Get("DEFAULT_REGION", "")
	seedPath := config.Get("VEHICLE_SEED_PATH", "")

	vehicles := registry.NewStaticRegistry()
	if seedPath != "" {
		if err := vehicles.LoadSeed(seedPath); err != nil {
			log.Fatal(err)
		}
		log.Printf("vehicle seed loaded path=%s", seedPath)
	}

	routeCache := buildRouteCache()
	conditionSource := buildConditionSource()
	history := buildHistory()

	planner := services.NewPlanner(vehicles, routeCache)
	planner.Config = services.OptimizerConfig{
		ExactStopLimit: config.GetInt("EXACT_STOP_LIMIT", 12),
		Budget:         config.GetDuration("OPTIMIZE_BUDGET", 2*time.Second),
	}

	metrics.Register()
	router := api.NewRouter(planner, conditionSource, vehicles, history, defaultRegion)

	// The optimizer is CPU-bound with its own wall-clock budget, so the
	// write timeout only needs headroom over that budget.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildRouteCache prefers Redis, then Postgres, then a process-local map.
func buildRouteCache() ports.RouteCache {
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		c, err := cache.NewRedisRouteCache(
			addr,
			os.Getenv("REDIS_PASSWORD"),
			config.GetInt("REDIS_DB", 0),
			config.GetDuration("ROUTE_CACHE_TTL", 24*time.Hour),
		)
		if err != nil {
			log.Fatal(err)
		}
		if err := c.Ping(context.Background()); err != nil {
			log.Fatal(err)
		}
		log.Printf("route cache backend=redis addr=%s", addr)
		return c
	}

	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		c := cache.NewPGRouteCache(conn)
		if err := c.InitSchema(context.Background()); err != nil {
			log.Fatal(err)
		}
		log.Println("route cache backend=postgres")
		return c
	}

	log.Println("route cache backend=memory")
	return cache.NewMemoryRouteCache()
}

func buildConditionSource() ports.ConditionSource {
	if baseURL := os.Getenv("CONDITIONS_URL"); strings.TrimSpace(baseURL) != "" {
		src, err := conditions.NewHTTPSource(baseURL, os.Getenv("CONDITIONS_API_KEY"))
		if err != nil {
			log.Fatal(err)
		}
		return src
	}
	// No feed configured: serve neutral conditions for local runs.
	return conditions.NewStaticSource(1.0, 1.0)
}

func buildHistory() handlers.HistorySaver {
	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		return nil
	}
	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repositories.InitSchema(context.Background(), conn); err != nil {
		log.Fatal(err)
	}
	return repositories.NewPGRouteRepository(conn)
}
