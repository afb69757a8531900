package http

import (
	"encoding/json"
	"net/http"

	"github.com/matryer/way"

	"github.com/dapamarket/dapa/types"
)

func (h *handler) chats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	in := types.ListConversations{
		UserID: r.URL.Query().Get("userId"),
	}

	out, err := h.svc.Conversations(ctx, in)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	if out == nil {
		out = []types.ConversationSummary{} // non null array
	}

	h.respond(w, out, http.StatusOK)
}

func (h *handler) messages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	in := types.ListMessages{
		ConversationID: way.Param(ctx, "chat_id"),
	}

	out, err := h.svc.Messages(ctx, in)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	if out == nil {
		out = []types.Message{} // non null array
	}

	h.respond(w, out, http.StatusOK)
}

func (h *handler) markChatRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	in := types.MarkConversationRead{
		ConversationID: way.Param(ctx, "chat_id"),
	}

	out, err := h.svc.MarkConversationRead(ctx, in)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	h.respond(w, out, http.StatusOK)
}

func (h *handler) createMessage(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var in types.CreateMessage
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondErr(w, errBadRequest)
		return
	}

	ctx := r.Context()
	out, err := h.svc.CreateMessage(ctx, in)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	h.respond(w, out, http.StatusCreated)
}
