package handler

import (
	"net/http"

	"github.com/objectifs/objectifs/internal/service"
)

type AIHandler struct {
	conversationService *service.ConversationService
}

func NewAIHandler(conversationService *service.ConversationService) *AIHandler {
	return &AIHandler{
		conversationService: conversationService,
	}
}

func (h *AIHandler) Conversations(w http.ResponseWriter, r *http.Request) error {
	conversations, err := h.conversationService.Conversations(currentUser(r).ID)
	if err != nil {
		return err
	}
	return list(w, conversations)
}

func (h *AIHandler) CreateConversation(w http.ResponseWriter, r *http.Request) error {
	var in struct {
		ObjectiveID *string `json:"objectiveId"`
	}
	err := decode(r, &in)
	if err != nil {
		return err
	}

	c, err := h.conversationService.Create(currentUser(r).ID, in.ObjectiveID)
	if err != nil {
		return err
	}
	return created(w, c)
}

func (h *AIHandler) Conversation(w http.ResponseWriter, r *http.Request) error {
	c, err := h.conversationService.ByID(currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		return err
	}
	return ok(w, c)
}

func (h *AIHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) error {
	err := h.conversationService.Delete(currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		return err
	}
	return deleted(w)
}

// AddMessage answers with 200 even when every provider failed; the reply is
// then the fallback advice.
func (h *AIHandler) AddMessage(w http.ResponseWriter, r *http.Request) error {
	var in struct {
		Content string `json:"content"`
	}
	err := decode(r, &in)
	if err != nil {
		return err
	}

	c, err := h.conversationService.AddMessage(r.Context(), currentUser(r).ID, r.PathValue("id"), in.Content)
	if err != nil {
		return err
	}
	return ok(w, c)
}

func (h *AIHandler) Suggestions(w http.ResponseWriter, r *http.Request) error {
	text, err := h.conversationService.Suggestions(r.Context(), currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		return err
	}
	return ok(w, map[string]string{"suggestions": text})
}

func (h *AIHandler) News(w http.ResponseWriter, r *http.Request) error {
	news, err := h.conversationService.News(currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		return err
	}
	return list(w, news)
}
