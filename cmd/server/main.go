package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/RipScriptos/Oversight/pkg/clients"
	"github.com/RipScriptos/Oversight/pkg/compiler"
	"github.com/RipScriptos/Oversight/pkg/config"
	"github.com/RipScriptos/Oversight/pkg/database"
	"github.com/RipScriptos/Oversight/pkg/oversight"
	"github.com/RipScriptos/Oversight/pkg/server"
	"github.com/RipScriptos/Oversight/pkg/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Session Store: Postgres when DATABASE_URL is set, memory otherwise.
	var store session.Store
	if cfg.DatabaseURL != "" {
		db, err := database.NewPostgresDB(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.InitSchema(context.Background()); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		store = session.NewPostgresStore(db)
	} else {
		store = session.NewMemoryStore()
	}

	llm, err := clients.OpenAI(cfg.Model, cfg.OpenAIApiKey)
	if err != nil {
		log.Fatalf("Failed to init OpenAI client: %v", err)
	}

	completer := &compiler.LLMCompleter{
		Model:       llm,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}

	system := oversight.New(completer, store)
	handler := server.NewHandler(system)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))
	r.Use(server.EmbedHeaders())
	r.Use(server.RequestLogger(logger))

	handler.RegisterRoutes(r)

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	fmt.Printf("Server starting on %s\n", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
