package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scoutai/models"
	"scoutai/utils"
)

// maxUploadBytes caps uploaded PDFs at 10 MB.
const maxUploadBytes = 10 << 20

// UploadHandler routes an uploaded PDF by conversation state: invoice
// verification when the session is waiting for one, knowledge-base
// ingestion otherwise.
func (hb *HandlerBundle) UploadHandler(c *gin.Context) {
	sessionID := c.PostForm("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required", "details": err.Error()})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}
	defer f.Close()
	document, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}

	ctx := c.Request.Context()
	session, err := hb.Sessions.Get(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
		return
	}

	if session.State != models.StateWaitingForInvoice {
		if err := hb.Knowledge.Index().AddDocument(fileHeader.Filename, document); err != nil {
			utils.GetLogger().Warn("failed to ingest uploaded document",
				zap.String("file", fileHeader.Filename), zap.Error(err))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not read the document"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"session_id": session.SessionID,
			"reply":      "Document added to knowledge base!",
			"state":      session.State,
		})
		return
	}

	ok, vb, msg := hb.Verifier.VerifyInvoice(ctx, document)
	if !ok {
		// Verification fails closed: the session keeps waiting for a
		// valid invoice.
		c.JSON(http.StatusOK, models.ChatResponse{
			SessionID: session.SessionID,
			Reply:     msg,
			State:     session.State,
		})
		return
	}

	session.Draft.VerifiedBooking = vb
	session.Append(models.RoleUser, msg)
	reply, _ := hb.Conversation.Process(ctx, session, models.EventInvoiceVerified)
	session.Append(models.RoleAssistant, reply)

	if err := hb.Sessions.Set(ctx, session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist session"})
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{
		SessionID: session.SessionID,
		Reply:     reply,
		State:     session.State,
	})
}
