package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pageza/macromatch/config"
	"github.com/pageza/macromatch/internal/api"
	"github.com/pageza/macromatch/internal/catalog"
	"github.com/pageza/macromatch/internal/database"
	"github.com/pageza/macromatch/internal/embedding"
	"github.com/pageza/macromatch/internal/nutrition"
	"github.com/pageza/macromatch/internal/server"
	"github.com/pageza/macromatch/internal/service"
	"github.com/pageza/macromatch/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	matcher := buildMatcher(ctx, cfg)
	nutritionService := service.NewNutritionService(matcher)

	recipeStore, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize recipe store: %v", err)
	}

	recipeService := service.NewRecipeService(recipeStore, nutritionService)
	recipeHandler := api.NewRecipeHandler(recipeService)

	srv := server.New(cfg, recipeHandler)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

// buildMatcher assembles the ingredient matcher: catalog source, embedding
// cache, and the optional semantic layer. Any missing piece degrades to a
// simpler matcher instead of failing startup.
func buildMatcher(ctx context.Context, cfg *config.Config) *nutrition.Matcher {
	var cat *catalog.Catalog
	if cfg.CatalogS3Bucket != "" {
		s3cfg, err := config.NewS3Config(ctx, cfg.CatalogS3Bucket)
		if err != nil {
			log.Printf("Failed to initialize S3 catalog source: %v", err)
			cat = catalog.Empty()
		} else {
			cat = catalog.LoadS3(ctx, s3cfg, cfg.CatalogS3Key)
		}
	} else {
		cat = catalog.LoadFile(cfg.CatalogPath)
	}

	var cache nutrition.EmbeddingCache = nutrition.NewMemoryCache()
	if cfg.RedisEnabled {
		client, err := database.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Redis unavailable, using in-memory embedding cache: %v", err)
		} else {
			cache = nutrition.NewRedisCache(client)
		}
	}

	var semantic *nutrition.SemanticMatcher
	embedder, err := embedding.NewClient()
	if err != nil {
		log.Printf("Semantic matching disabled: %v", err)
	} else {
		semantic = nutrition.NewSemanticMatcher(embedder, cache, cfg.SemanticThreshold, 10*time.Second)
	}

	return nutrition.NewMatcher(cat, semantic, nutrition.Config{
		LexicalThreshold: cfg.LexicalThreshold,
		TopK:             cfg.TopK,
	})
}

// buildStore opens the configured recipe store backend.
func buildStore(cfg *config.Config) (store.RecipeStore, error) {
	switch cfg.StoreBackend {
	case config.StorePostgres:
		db, err := database.New(cfg)
		if err != nil {
			return nil, err
		}
		return store.NewGormStore(db), nil
	default:
		log.Printf("Using file-backed recipe store at %s", cfg.RecipesPath)
		return store.NewFileStore(cfg.RecipesPath), nil
	}
}
