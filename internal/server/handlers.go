package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kk-code-lab/quizmark/internal/answers"
	"github.com/kk-code-lab/quizmark/internal/event"
	"github.com/kk-code-lab/quizmark/internal/grade"
	"github.com/kk-code-lab/quizmark/internal/logging"
	"github.com/kk-code-lab/quizmark/internal/render"
)

type parseRequest struct {
	Source string `json:"source" binding:"max=1000000"`
}

type renderRequest struct {
	Source  string                       `json:"source" binding:"max=1000000"`
	Answers map[string]map[string]string `json:"answers"`
}

type gradeRequest struct {
	Source        string                       `json:"source" binding:"max=1000000"`
	Answers       map[string]map[string]string `json:"answers"`
	CaseSensitive *bool                        `json:"case_sensitive"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) parse(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.parser.Parse(req.Source))
}

func (s *Server) render(c *gin.Context) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc := s.parser.Parse(req.Source)
	state := answers.FromMap(req.Answers).Prune(doc)
	c.JSON(http.StatusOK, render.Build(doc, state))
}

func (s *Server) grade(c *gin.Context) {
	var req gradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	policy := s.policy
	if req.CaseSensitive != nil {
		policy.CaseSensitive = *req.CaseSensitive
	}
	doc := s.parser.Parse(req.Source)
	report := grade.Grade(doc, answers.FromMap(req.Answers).Prune(doc), policy)
	learner := c.GetHeader(LearnerHeader)
	s.publishGraded(report, learner)
	c.JSON(http.StatusOK, report)
}

func (s *Server) publishGraded(report grade.Report, learner string) {
	payload := event.NewGraded(report, learner, s.now())
	if err := s.publisher.Publish(event.TypeMarkupGraded, payload); err != nil {
		s.logger.Error("publish graded event", err, logging.Learner(learner))
	}
}
