package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	Iservices "voice-connector/internal/domain/interfaces/services"
	"voice-connector/internal/infra/logger"
	"voice-connector/internal/infra/provider"
	"voice-connector/internal/infra/services"
)

// MediaStreamHandler accepts inbound media-stream connections and runs one
// call bridge per connection.
type MediaStreamHandler struct {
	Logger             *logger.Logger
	AgentConfigService Iservices.IAgentConfigService
	TranscriptService  Iservices.ITranscriptService
	ArchiveService     Iservices.IArchiveService
	NewModelSession    func() provider.IModelSession

	upgrader websocket.Upgrader
}

func NewMediaStreamHandler(
	log *logger.Logger,
	agentConfigService Iservices.IAgentConfigService,
	transcriptService Iservices.ITranscriptService,
	archiveService Iservices.IArchiveService,
	newModelSession func() provider.IModelSession,
) *MediaStreamHandler {
	return &MediaStreamHandler{
		Logger:             log,
		AgentConfigService: agentConfigService,
		TranscriptService:  transcriptService,
		ArchiveService:     archiveService,
		NewModelSession:    newModelSession,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *MediaStreamHandler) MediaStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Error(fmt.Sprintf("Failed to upgrade media stream connection: %v", err))
		return
	}

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				h.Logger.Error(fmt.Sprintf("Recovered from panic: %v", rec))
				_ = conn.Close()
			}
		}()

		bridge := services.NewCallBridge(
			conn,
			h.Logger,
			h.AgentConfigService,
			h.TranscriptService,
			h.ArchiveService,
			h.NewModelSession,
		)
		bridge.Run()
	}()
}
