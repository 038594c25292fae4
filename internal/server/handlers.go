package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sociotyper/sociotyper/internal/core/export"
	"github.com/sociotyper/sociotyper/internal/core/graph"
	"github.com/sociotyper/sociotyper/internal/core/model"
	"github.com/sociotyper/sociotyper/internal/core/review"
	"github.com/sociotyper/sociotyper/internal/core/session"
)

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) Models(c *gin.Context) {
	models := []gin.H{}
	if s.Config.LLM.Provider != "" {
		models = append(models, gin.H{
			"id":   s.Config.LLM.Model,
			"name": s.Config.LLM.Model,
			"type": s.Config.LLM.Provider,
		})
	}
	c.JSON(http.StatusOK, gin.H{"models": models})
}

type scrapeRequest struct {
	URL string `json:"url"`
}

func (s *Server) ScrapeURL(c *gin.Context) {
	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No URL provided"})
		return
	}

	page, err := s.Scraper.Scrape(c.Request.Context(), req.URL)
	if err != nil {
		s.Logger.Error("scrape failed", "url", req.URL, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

type extractRequest struct {
	Text        string `json:"text"`
	UserPrompt  string `json:"user_prompt"`
	MaxTriplets int    `json:"max_triplets"`
	SessionID   string `json:"session_id"`
}

// ExtractTriplets runs the LLM over the text, validates the candidates and
// returns them. With a session_id the batch is also added to that session.
func (s *Server) ExtractTriplets(c *gin.Context) {
	if s.Extractor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no LLM provider configured"})
		return
	}

	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No text provided"})
		return
	}

	maxTriplets := req.MaxTriplets
	if maxTriplets <= 0 {
		maxTriplets = s.Config.Extraction.MaxTriplets
	}

	result, err := s.Extractor.Extract(c.Request.Context(), req.Text, req.UserPrompt, maxTriplets)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	triplets := make([]*model.Triplet, len(result.Triplets))
	for i, raw := range result.Triplets {
		t := model.FromRaw(raw)
		triplets[i] = &t
	}
	s.Validator.ValidateBatch(triplets)

	if req.SessionID != "" {
		sess, ok := s.Sessions.Get(req.SessionID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		batch := make([]model.Triplet, len(triplets))
		for i, t := range triplets {
			batch[i] = *t
		}
		if err := sess.AddBatch(batch); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
	}

	out := make([]model.Triplet, len(triplets))
	for i, t := range triplets {
		out[i] = *t
	}
	c.JSON(http.StatusOK, gin.H{
		"total_chunks":   result.TotalChunks,
		"failed_chunks":  result.FailedChunks,
		"total_triplets": len(out),
		"triplets":       out,
		"model_used":     s.Config.LLM.Model,
		"status":         "success",
	})
}

func (s *Server) CreateSession(c *gin.Context) {
	id, _ := s.Sessions.Create()
	c.JSON(http.StatusCreated, gin.H{"session_id": id})
}

func (s *Server) GetSession(c *gin.Context) {
	sess, ok := s.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"triplets": sess.Triplets(), "counts": sess.Counts()})
}

func (s *Server) DeleteSession(c *gin.Context) {
	s.Sessions.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

type addTripletsRequest struct {
	Triplets []model.RawTriplet `json:"triplets"`
}

// AddTriplets ingests externally extracted triplets: required-field check,
// validation, then append. Malformed records fail the request before
// anything is added.
func (s *Server) AddTriplets(c *gin.Context) {
	sess, ok := s.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req addTripletsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	triplets := make([]*model.Triplet, 0, len(req.Triplets))
	for i, raw := range req.Triplets {
		if err := raw.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("triplet %d: %s", i, err)})
			return
		}
		t := model.FromRaw(raw)
		triplets = append(triplets, &t)
	}
	s.Validator.ValidateBatch(triplets)

	batch := make([]model.Triplet, len(triplets))
	for i, t := range triplets {
		batch[i] = *t
	}
	if err := sess.AddBatch(batch); err != nil {
		var dup *session.ErrDuplicateID
		if errors.As(err, &dup) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": sess.Counts()})
}

type setStatusRequest struct {
	Status model.Status `json:"status"`
}

func (s *Server) SetStatus(c *gin.Context) {
	sess, ok := s.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	switch req.Status {
	case model.StatusPending, model.StatusAccepted, model.StatusRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid status %q", req.Status)})
		return
	}

	if err := sess.SetStatus(c.Param("tid"), req.Status); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": sess.Counts()})
}

func (s *Server) GetCounts(c *gin.Context) {
	sess, ok := s.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, sess.Counts())
}

func (s *Server) GetGraph(c *gin.Context) {
	sess, ok := s.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	filter := c.DefaultQuery("filter", graph.FilterAll)
	g := graph.Build(sess.Triplets(), filter)
	if g.Nodes == nil {
		g.Nodes = []model.GraphNode{}
	}
	if g.Links == nil {
		g.Links = []model.GraphLink{}
	}
	c.JSON(http.StatusOK, g)
}

func (s *Server) GetCommunities(c *gin.Context) {
	sess, ok := s.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	g := graph.Build(sess.Triplets(), c.DefaultQuery("filter", graph.FilterAll))
	communities := graph.DetectCommunities(g)

	if c.Query("name") == "true" && s.Namer != nil {
		communities = s.Namer.NameAll(c.Request.Context(), g, communities)
	}
	if communities == nil {
		communities = []model.Community{}
	}
	c.JSON(http.StatusOK, gin.H{"communities": communities})
}

// Export streams a triplet or network export as a file download.
func (s *Server) Export(c *gin.Context) {
	sess, ok := s.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	triplets := sess.Triplets()

	var (
		payload     []byte
		err         error
		filename    string
		contentType string
	)
	switch c.Param("format") {
	case "json":
		payload, err = export.ToJSON(triplets, time.Now())
		filename, contentType = export.TripletsJSONFile, "application/json"
	case "csv":
		payload, err = export.ToCSV(triplets)
		filename, contentType = export.TripletsCSVFile, "text/csv"
	case "xlsx":
		payload, err = export.ToXLSX(triplets)
		filename, contentType = export.TripletsXLSXFile, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "network":
		g := graph.Build(triplets, c.DefaultQuery("filter", graph.FilterAll))
		payload, err = export.GraphToJSON(g)
		filename, contentType = export.NetworkJSONFile, "application/json"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown export format %q", c.Param("format"))})
		return
	}
	if err != nil {
		s.Logger.Error("export failed", "format", c.Param("format"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}

type suggestionsRequest struct {
	Names []string `json:"names"`
}

// Suggestions asks the LLM for catalog candidates. Without explicit names it
// collects the unresolved role/counterrole strings from the session.
func (s *Server) Suggestions(c *gin.Context) {
	if s.Suggester == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no LLM provider configured"})
		return
	}
	sess, ok := s.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req suggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	names := req.Names
	if len(names) == 0 {
		seen := make(map[string]bool)
		for _, t := range sess.Triplets() {
			switch t.Reason {
			case model.ReasonUnknownRole, model.ReasonAmbiguousMatch:
				if !seen[t.Role] {
					seen[t.Role] = true
					names = append(names, t.Role)
				}
			case model.ReasonUnknownCounterrole:
				if !seen[t.Counterrole] {
					seen[t.Counterrole] = true
					names = append(names, t.Counterrole)
				}
			}
		}
	}

	suggestions, err := s.Suggester.Suggest(c.Request.Context(), names)
	if err != nil {
		s.Logger.Error("suggestion generation failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate suggestions"})
		return
	}
	if suggestions == nil {
		suggestions = []review.Suggestion{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (s *Server) Publish(c *gin.Context) {
	if s.Publisher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no graph store configured"})
		return
	}
	sess, ok := s.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	if err := s.Publisher.Publish(c.Request.Context(), c.Param("id"), sess.Triplets()); err != nil {
		s.Logger.Error("publish failed", "session", c.Param("id"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to publish network"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "published"})
}
