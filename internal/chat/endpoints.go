package chat

import (
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

type Endpoints struct {
	relay *Relay
}

func NewEndpoints(relay *Relay) *Endpoints {
	return &Endpoints{relay: relay}
}

type chatRequest struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (e *Endpoints) Chat(ctx *fasthttp.RequestCtx) {
	var req chatRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.Error("Invalid request body", fasthttp.StatusBadRequest)
		return
	}
	if req.Sender == "" || req.Message == "" {
		ctx.Error("sender and message are required", fasthttp.StatusBadRequest)
		return
	}

	reply, err := e.relay.Reply(ctx, req.Sender, req.Message)
	if err != nil {
		log.Error().Err(err).Str("sender", req.Sender).Msg("Chat relay failed")
		ctx.Error("Chat unavailable", fasthttp.StatusBadGateway)
		return
	}

	response, err := json.Marshal(chatResponse{Reply: reply})
	if err != nil {
		ctx.Error("Internal Server Error", fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(response)
}
