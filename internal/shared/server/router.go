package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"applywise-backend/internal/ats"
	"applywise-backend/internal/jobapplications"
	"applywise-backend/internal/llm"
	"applywise-backend/internal/llm/groq"
	"applywise-backend/internal/resumes"
	"applywise-backend/internal/shared/config"
	"applywise-backend/internal/shared/server/middleware"
	"applywise-backend/internal/shared/server/respond"
	"applywise-backend/internal/shared/storage/mongodb"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	var db *mongo.Database
	if cfg.MongoURI != "" {
		client, err := mongodb.Connect(context.Background(), cfg.MongoURI)
		if err != nil {
			log.Printf("failed to connect mongodb, falling back to memory: %v", err)
		} else {
			db = client.Database(cfg.MongoDatabase)
			if err := mongodb.EnsureIndexes(context.Background(), db); err != nil {
				log.Printf("failed to ensure indexes: %v", err)
			}
		}
	}

	var (
		resumeRepo   resumes.Repo
		appRepo      jobapplications.Repo
		analysisRepo ats.Repo
	)
	if db != nil {
		resumeRepo = resumes.NewMongoRepo(db)
		appRepo = jobapplications.NewMongoRepo(db)
		analysisRepo = ats.NewMongoRepo(db)
	} else {
		resumeRepo = resumes.NewMemoryRepo()
		appRepo = jobapplications.NewMemoryRepo()
		analysisRepo = ats.NewMemoryRepo()
	}

	var llmClient llm.Client
	if cfg.GroqAPIKey != "" {
		client, err := groq.NewClient(cfg.GroqAPIKey, cfg.GroqModel)
		if err != nil {
			log.Printf("groq client unavailable: %v", err)
		} else {
			llmClient = client
		}
	} else {
		log.Printf("GROQ_API_KEY not set; analysis endpoint will be unavailable")
	}

	resumeHandler := resumes.NewHandler(&resumes.Service{Repo: resumeRepo})
	appHandler := jobapplications.NewHandler(&jobapplications.Service{Repo: appRepo})
	atsHandler := ats.NewHandler(&ats.Service{
		Repo:    analysisRepo,
		Resumes: resumeRepo,
		LLM:     llmClient,
	})

	limiter := middleware.NewRateLimiter(nil)

	api := r.Group("/api/v1")
	api.GET("/health-check", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"status": "ok"})
	})
	resumeHandler.RegisterRoutes(api, limiter)
	appHandler.RegisterRoutes(api, limiter)
	atsHandler.RegisterRoutes(api, limiter)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
