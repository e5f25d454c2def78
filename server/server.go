// Package server exposes the explanation pipeline, review queue and
// chatbot over HTTP.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/saisubham-29/medrag"
	"github.com/saisubham-29/medrag/booking"
	"github.com/saisubham-29/medrag/chat"
	"github.com/saisubham-29/medrag/helper"
	"github.com/saisubham-29/medrag/model"
)

// Server routes HTTP requests into a shared medrag.System. The chatbot
// session is shared too, matching the single-session console flow.
type Server struct {
	system *medrag.System
	bot    *chat.Bot
}

// New creates a server over the given system. The chatbot is only
// available when the system has a completion capability.
func New(system *medrag.System) (*Server, error) {
	if system == nil {
		return nil, helper.NewError("server validation", fmt.Errorf("system is nil"))
	}

	s := &Server{system: system}
	if system.Generator.Complete != nil {
		bot, err := system.NewChatBot()
		if err != nil {
			return nil, helper.NewError("create chatbot", err)
		}
		s.bot = bot
	}

	return s, nil
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Logger(),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}),
	)

	router.GET("/health", s.health)

	api := router.Group("/api")
	{
		api.POST("/report", s.processReport)
		api.POST("/question", s.answerQuestion)
		api.POST("/chat", s.chatMessage)
		api.GET("/reviews", s.listReviews)
		api.POST("/reviews/:id/verify", s.verifyReview)
		api.GET("/booking/slots", s.bookingSlots)
	}

	return router
}

// Run starts the HTTP server on the given address.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type reportRequest struct {
	Report     string   `json:"report" binding:"required"`
	Age        int      `json:"age"`
	Literacy   string   `json:"literacy"`
	Conditions []string `json:"conditions"`
}

func (r *reportRequest) patient() *model.PatientContext {
	age := r.Age
	if age == 0 {
		age = 50
	}
	literacy := model.Literacy(r.Literacy)
	if r.Literacy == "" {
		literacy = model.LiteracyMedium
	}
	return &model.PatientContext{
		Age:                age,
		MedicalLiteracy:    literacy,
		ExistingConditions: r.Conditions,
	}
}

func (s *Server) processReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	output, reportID, err := s.system.ProcessReport(c.Request.Context(), req.Report, req.patient())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := gin.H{
		"summary":         output.Summary,
		"explanation":     output.PersonalizedExplanation,
		"findings":        output.Findings,
		"confidence":      output.ConfidenceScore,
		"uncertainties":   output.UncertaintyNotes,
		"sources_used":    output.SourcesUsed,
		"requires_review": output.RequiresDoctorReview,
	}
	if reportID != uuid.Nil {
		response["report_id"] = reportID
	}
	c.JSON(http.StatusOK, response)
}

type questionRequest struct {
	Question   string   `json:"question" binding:"required"`
	Age        int      `json:"age"`
	Literacy   string   `json:"literacy"`
	Conditions []string `json:"conditions"`
}

func (s *Server) answerQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	patient := (&reportRequest{Age: req.Age, Literacy: req.Literacy, Conditions: req.Conditions}).patient()
	answer, err := s.system.AnswerQuestion(c.Request.Context(), req.Question, patient)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, answer)
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (s *Server) chatMessage(c *gin.Context) {
	if s.bot == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat requires a configured completion backend"})
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	reply, err := s.bot.Chat(c.Request.Context(), req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Booking is offered only on explicit request
	if booking.DetectIntent(req.Message) {
		specialty := booking.SuggestSpecialty(s.bot.Symptoms(), s.bot.Conditions())
		slots := booking.AvailableSlots(specialty, 7, time.Now())
		reply.ShowBooking = true
		reply.Response = booking.FormatResponse(specialty, slots)
	}

	c.JSON(http.StatusOK, reply)
}

func (s *Server) listReviews(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pending": s.system.Reviews.Pending()})
}

type verifyRequest struct {
	Approved bool   `json:"approved"`
	Notes    string `json:"notes"`
}

func (s *Server) verifyReview(c *gin.Context) {
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	output, err := s.system.Reviews.Verify(reportID, req.Approved, req.Notes)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"output": output})
}

func (s *Server) bookingSlots(c *gin.Context) {
	specialty := c.Query("specialty")
	if specialty == "" {
		specialty = booking.DefaultSpecialty
	}

	slots := booking.AvailableSlots(specialty, 7, time.Now())
	c.JSON(http.StatusOK, gin.H{
		"specialty": specialty,
		"slots":     slots,
	})
}
