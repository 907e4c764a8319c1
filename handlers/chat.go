package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"scoutai/models"
	"scoutai/utils"
)

// ChatHandler runs one free-text turn: the booking state machine gets
// first claim on the input, everything it declines goes to the knowledge
// answerer. Both sides of the turn are appended to the transcript before
// the session is persisted.
func (hb *HandlerBundle) ChatHandler(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	ctx := c.Request.Context()
	session, err := hb.Sessions.Get(ctx, req.SessionID)
	if err != nil {
		utils.GetLogger().Error("failed to load session", zap.String("sessionID", req.SessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
		return
	}

	reply, claimed := hb.Conversation.Process(ctx, session, req.Text)
	if !claimed {
		reply = hb.Knowledge.Answer(ctx, req.Text, session.Transcript)
	}

	session.Append(models.RoleUser, req.Text)
	session.Append(models.RoleAssistant, reply)

	if err := hb.Sessions.Set(ctx, session); err != nil {
		utils.GetLogger().Error("failed to persist session", zap.String("sessionID", req.SessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist session"})
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{
		SessionID: session.SessionID,
		Reply:     reply,
		State:     session.State,
		Rows:      session.SelectionRows,
	})
}

// BookingsByEmailHandler lists a customer's bookings for the "my
// bookings" lookup.
func (hb *HandlerBundle) BookingsByEmailHandler(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	bookings, err := hb.Ledger.GetByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": email, "bookings": bookings, "count": len(bookings)})
}

// AvailabilityHandler returns the selection rows the session is currently
// offering, so the frontend can re-render the table.
func (hb *HandlerBundle) AvailabilityHandler(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	session, err := hb.Sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": session.SessionID,
		"state":      session.State,
		"rows":       session.SelectionRows,
	})
}
