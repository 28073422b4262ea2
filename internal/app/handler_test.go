package app_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/TopPano/providence-engine/internal/app"
	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/TopPano/providence-engine/internal/core/ports/mocks"
	"github.com/TopPano/providence-engine/internal/engine/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type published struct {
	Subject string
	Body    map[string]any
}

// recordBus expects any number of publishes and records them in order.
func recordBus(t *testing.T, bus *mocks.MockBus) func() []published {
	t.Helper()
	var (
		mu  sync.Mutex
		out []published
	)
	bus.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(subject string, data []byte) error {
		var body map[string]any
		assert.NoError(t, json.Unmarshal(data, &body))
		mu.Lock()
		defer mu.Unlock()
		out = append(out, published{Subject: subject, Body: body})
		return nil
	}).AnyTimes()
	return func() []published {
		mu.Lock()
		defer mu.Unlock()
		return append([]published(nil), out...)
	}
}

func buildMessage(t *testing.T, channelID string, pkg []byte, opts domain.BuildOptions) router.Message {
	t.Helper()
	payload, err := json.Marshal(app.BuildPayload{EnginePackage: pkg, BuildOptions: opts})
	require.NoError(t, err)
	return router.Message{Type: app.BuildMessageType, ChannelID: channelID, Payload: payload}
}

func TestSubjects(t *testing.T) {
	assert.Equal(t, "engine.c1.build.message", app.MessageSubject("c1"))
	assert.Equal(t, "engine.c1.build.control", app.ControlSubject("c1"))
}

func TestBuildHandler_Success(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		e := newEnv(t)
		e.expectSuccess(testPackage, domain.BuildOptions{})
		bus := mocks.NewMockBus(gomock.NewController(t))
		records := recordBus(t, bus)

		h := app.NewBuildHandler(e.orch, bus, e.log)
		h.Handle(context.Background(), buildMessage(t, "c1", testPackage, domain.BuildOptions{}))

		assert.Equal(t, []published{
			{Subject: "engine.c1.build.message", Body: map[string]any{"data": "Step 1/2\n"}},
			{Subject: "engine.c1.build.message", Body: map[string]any{"data": "Successfully built\n"}},
			{Subject: "engine.c1.build.message", Body: map[string]any{"data": "pushed\n"}},
			{Subject: "engine.c1.build.control", Body: map[string]any{"type": "END"}},
		}, records())
	})
}

func TestBuildHandler_BuildFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		e := newEnv(t)
		e.unpacker.EXPECT().Unpack(gomock.Any(), testPackage).Return(testDir, nil)
		e.descriptor.EXPECT().Generate(testDir, gomock.Any()).Return("", domain.ErrManifestNotFound)
		e.unpacker.EXPECT().Remove(testDir).Return(nil)
		bus := mocks.NewMockBus(gomock.NewController(t))
		records := recordBus(t, bus)

		h := app.NewBuildHandler(e.orch, bus, e.log)
		h.Handle(context.Background(), buildMessage(t, "c2", testPackage, domain.BuildOptions{}))

		got := records()
		require.Len(t, got, 1)
		assert.Equal(t, "engine.c2.build.control", got[0].Subject)
		assert.Equal(t, "ERROR", got[0].Body["type"])
		payload, ok := got[0].Body["payload"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "ManifestNotFound", payload["kind"])
		assert.Contains(t, payload["message"], "enginefile not found")
	})
}

func TestBuildHandler_InvalidPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload json.RawMessage
	}{
		{name: "missing", payload: nil},
		{name: "not an object", payload: json.RawMessage(`"abc"`)},
		{name: "bad base64", payload: json.RawMessage(`{"enginePackage":"***"}`)},
		{name: "empty package", payload: json.RawMessage(`{"enginePackage":""}`)},
		{name: "null", payload: json.RawMessage(`null`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			bus := mocks.NewMockBus(gomock.NewController(t))
			records := recordBus(t, bus)

			h := app.NewBuildHandler(e.orch, bus, e.log)
			h.Handle(context.Background(), router.Message{Type: app.BuildMessageType, ChannelID: "c3", Payload: tt.payload})

			got := records()
			require.Len(t, got, 1)
			assert.Equal(t, "engine.c3.build.control", got[0].Subject)
			assert.Equal(t, "ERROR", got[0].Body["type"])
			assert.Equal(t, "InvalidInput", got[0].Body["payload"].(map[string]any)["kind"])
		})
	}
}

func TestBuildHandler_PublishFailureIsLogged(t *testing.T) {
	e := newEnv(t)
	bus := mocks.NewMockBus(gomock.NewController(t))
	bus.EXPECT().Publish("engine.c4.build.control", gomock.Any()).Return(errors.New("connection closed"))

	h := app.NewBuildHandler(e.orch, bus, e.log)
	h.Reject(router.Message{ChannelID: "c4"}, domain.ErrInvalidInput)
}

func TestDecodeBuildPayload(t *testing.T) {
	raw := json.RawMessage(`{"enginePackage":"` + base64.StdEncoding.EncodeToString(testPackage) +
		`","buildOptions":{"enginefileName":"engine.yml"}}`)

	req, err := app.DecodeBuildPayload(raw)

	require.NoError(t, err)
	assert.Equal(t, testPackage, req.EnginePackage)
	assert.Equal(t, "engine.yml", req.Options.EnginefileName)
}
