package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"scoutai/models"
)

// SelectHandler confirms a row from the availability table during a new
// booking. It stages the row's package and date into the draft, then
// feeds the selection sentinel through the normal turn pipeline.
func (hb *HandlerBundle) SelectHandler(c *gin.Context) {
	var req models.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	session, err := hb.Sessions.Get(ctx, req.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
		return
	}
	if session.State != models.StateWaitingForSelection {
		c.JSON(http.StatusConflict, gin.H{"error": "no selection is pending for this session"})
		return
	}
	if req.RowIndex < 0 || req.RowIndex >= len(session.SelectionRows) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "row_index out of range"})
		return
	}

	row := session.SelectionRows[req.RowIndex]
	session.Draft.ModuleKey = row.ModuleKey
	session.Draft.Date = row.RawDate

	session.Append(models.RoleUser, fmt.Sprintf("I select %s on %s", row.PackageName, row.DisplayDate))
	reply, _ := hb.Conversation.Process(ctx, session, models.EventSelectionConfirm)
	session.Append(models.RoleAssistant, reply)

	if err := hb.Sessions.Set(ctx, session); err != nil {
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

// SelectDateHandler confirms a new date from the table during an update.
func (hb *HandlerBundle) SelectDateHandler(c *gin.Context) {
	var req models.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	session, err := hb.Sessions.Get(ctx, req.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
		return
	}
	if session.State != models.StateWaitingForUpdateSelection {
		c.JSON(http.StatusConflict, gin.H{"error": "no date selection is pending for this session"})
		return
	}
	if req.RowIndex < 0 || req.RowIndex >= len(session.SelectionRows) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "row_index out of range"})
		return
	}

	row := session.SelectionRows[req.RowIndex]
	session.Draft.NewDate = row.RawDate

	session.Append(models.RoleUser, fmt.Sprintf("I select date: %s", row.DisplayDate))
	reply, _ := hb.Conversation.Process(ctx, session, models.EventUpdateSelected)
	session.Append(models.RoleAssistant, reply)

	if err := hb.Sessions.Set(ctx, session); err != nil {
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
