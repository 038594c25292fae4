// Package server exposes the extraction/validation pipeline over HTTP.
package server

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/sociotyper/sociotyper/internal/config"
	"github.com/sociotyper/sociotyper/internal/core/catalog"
	"github.com/sociotyper/sociotyper/internal/core/extraction"
	"github.com/sociotyper/sociotyper/internal/core/review"
	"github.com/sociotyper/sociotyper/internal/core/session"
	"github.com/sociotyper/sociotyper/internal/core/sociotype"
	"github.com/sociotyper/sociotyper/internal/core/validate"
	"github.com/sociotyper/sociotyper/internal/core/verbs"
	"github.com/sociotyper/sociotyper/internal/driver"
	"github.com/sociotyper/sociotyper/internal/llm"
	"github.com/sociotyper/sociotyper/internal/scrape"
)

type Server struct {
	Config    *config.Config
	Catalog   *catalog.Catalog
	Verbs     *verbs.Table
	Validator *validate.Validator
	Sessions  *session.Manager
	Extractor *extraction.Extractor
	Scraper   *scrape.Scraper
	Suggester *review.Suggester
	Namer     *sociotype.Namer
	Publisher *driver.Publisher // nil when no graph store is configured
	Logger    *log.Logger
}

// New wires the pipeline from config. The LLM client and graph store are
// optional: without an LLM provider the extraction, suggestion and naming
// routes return 503; without a Memgraph URI the publish route does.
func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Server, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	table, err := loadVerbs(cfg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		Config:    cfg,
		Catalog:   cat,
		Verbs:     table,
		Validator: validate.New(cat, table, cfg.Matching.FuzzyThreshold),
		Sessions:  session.NewManager(),
		Scraper:   scrape.New(),
		Logger:    logger,
	}

	if cfg.LLM.Provider != "" {
		client, err := llm.NewClient(ctx, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
		}
		chunker := extraction.Chunker{
			Size:    cfg.Extraction.ChunkSize,
			Method:  cfg.Extraction.ChunkMethod,
			Overlap: cfg.Extraction.ChunkOverlap,
		}
		s.Extractor = extraction.NewExtractor(client, cat, table, chunker)
		s.Extractor.Logger = logger
		s.Suggester = review.NewSuggester(client, cat)
		s.Namer = sociotype.NewNamer(client)
	} else {
		logger.Warn("no LLM provider configured; extraction routes disabled")
	}

	if cfg.Memgraph.URI != "" {
		d, err := driver.NewMemgraphDriver(cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to graph store: %w", err)
		}
		if err := d.BuildIndices(ctx); err != nil {
			return nil, err
		}
		s.Publisher = driver.NewPublisher(d, cat)
	}

	logger.Info("pipeline ready",
		"actors", cat.Len(),
		"fuzzy_threshold", cfg.Matching.FuzzyThreshold,
		"llm", cfg.LLM.Provider)
	return s, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.ActorsPath != "" {
		return catalog.Load(cfg.Catalog.ActorsPath)
	}
	return catalog.Default()
}

func loadVerbs(cfg *config.Config) (*verbs.Table, error) {
	if cfg.Catalog.VerbsPath != "" {
		return verbs.Load(cfg.Catalog.VerbsPath)
	}
	return verbs.Default(), nil
}

// SetupRouter registers all routes.
func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.Health)
	r.GET("/models", s.Models)
	r.POST("/scrape_url", s.ScrapeURL)
	r.POST("/extract_triplets", s.ExtractTriplets)

	r.POST("/sessions", s.CreateSession)
	r.GET("/sessions/:id", s.GetSession)
	r.DELETE("/sessions/:id", s.DeleteSession)
	r.POST("/sessions/:id/triplets", s.AddTriplets)
	r.PATCH("/sessions/:id/triplets/:tid", s.SetStatus)
	r.GET("/sessions/:id/counts", s.GetCounts)
	r.GET("/sessions/:id/graph", s.GetGraph)
	r.GET("/sessions/:id/communities", s.GetCommunities)
	r.GET("/sessions/:id/export/:format", s.Export)
	r.POST("/sessions/:id/suggestions", s.Suggestions)
	r.POST("/sessions/:id/publish", s.Publish)

	return r
}
