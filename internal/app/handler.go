package app

import (
	"context"
	"encoding/json"

	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/TopPano/providence-engine/internal/core/ports"
	"github.com/TopPano/providence-engine/internal/engine/pipeline"
	"github.com/TopPano/providence-engine/internal/engine/router"
	"go.trai.ch/zerr"
)

// BuildMessageType is the controller message type that requests a build.
const BuildMessageType = "BUILD"

const (
	controlEnd   = "END"
	controlError = "ERROR"
)

// Starter launches builds.
type Starter interface {
	Start(ctx context.Context, req domain.BuildRequest) *pipeline.Build
}

// BuildPayload is the payload of a BUILD message. EnginePackage travels as
// base64 in JSON.
type BuildPayload struct {
	EnginePackage []byte              `json:"enginePackage"`
	BuildOptions  domain.BuildOptions `json:"buildOptions"`
}

type progressMessage struct {
	Data string `json:"data"`
}

type controlMessage struct {
	Type    string        `json:"type"`
	Payload *errorPayload `json:"payload,omitempty"`
}

type errorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// MessageSubject is the subject progress chunks of a channel are published on.
func MessageSubject(channelID string) string {
	return "engine." + channelID + ".build.message"
}

// ControlSubject is the subject the terminal END or ERROR of a channel is published on.
func ControlSubject(channelID string) string {
	return "engine." + channelID + ".build.control"
}

// BuildHandler runs one build per BUILD message and relays its events to the
// requesting channel.
type BuildHandler struct {
	builds Starter
	bus    ports.Bus
	logger ports.Logger
}

// NewBuildHandler creates a BuildHandler.
func NewBuildHandler(builds Starter, bus ports.Bus, logger ports.Logger) *BuildHandler {
	return &BuildHandler{builds: builds, bus: bus, logger: logger}
}

// Handle runs the build requested by msg and returns once its terminal
// control message has been published.
func (h *BuildHandler) Handle(ctx context.Context, msg router.Message) {
	log := h.logger.With("channel_id", msg.ChannelID)

	req, err := DecodeBuildPayload(msg.Payload)
	if err != nil {
		log.Error(err)
		h.Reject(msg, err)
		return
	}

	b := h.builds.Start(ctx, req)
	log = log.With("build_id", b.ID().String())
	log.Info("build accepted")

	for ev := range b.Events() {
		if !ev.Terminal() {
			h.publish(log, MessageSubject(msg.ChannelID), progressMessage{Data: string(ev.Data)})
			continue
		}
		if ev.Kind == domain.EventError {
			h.publish(log, ControlSubject(msg.ChannelID), errorControl(ev.Err))
		} else {
			h.publish(log, ControlSubject(msg.ChannelID), controlMessage{Type: controlEnd})
		}
		log.Info("build finished")
	}
}

// Reject answers msg with an ERROR control message without running a build.
func (h *BuildHandler) Reject(msg router.Message, err error) {
	h.publish(h.logger.With("channel_id", msg.ChannelID), ControlSubject(msg.ChannelID), errorControl(err))
}

func (h *BuildHandler) publish(log ports.Logger, subject string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error(zerr.With(zerr.Wrap(err, "failed to encode message"), "subject", subject))
		return
	}
	if err := h.bus.Publish(subject, data); err != nil {
		log.Error(err)
	}
}

func errorControl(err error) controlMessage {
	return controlMessage{
		Type: controlError,
		Payload: &errorPayload{
			Kind:    domain.KindOf(err),
			Message: err.Error(),
		},
	}
}

// DecodeBuildPayload turns the payload of a BUILD message into a build request.
func DecodeBuildPayload(raw json.RawMessage) (domain.BuildRequest, error) {
	if len(raw) == 0 {
		return domain.BuildRequest{}, domain.Tag(domain.ErrInvalidInput, zerr.New("missing build payload"))
	}

	var p BuildPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.BuildRequest{}, domain.Tag(domain.ErrInvalidInput, zerr.Wrap(err, "failed to decode build payload"))
	}
	if len(p.EnginePackage) == 0 {
		return domain.BuildRequest{}, domain.Tag(domain.ErrInvalidInput, zerr.New("empty engine package"))
	}

	return domain.BuildRequest{EnginePackage: p.EnginePackage, Options: p.BuildOptions}, nil
}
