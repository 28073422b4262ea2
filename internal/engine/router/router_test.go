package router_test

import (
	"context"
	"errors"
	"testing"

	"github.com/TopPano/providence-engine/internal/core/ports"
	"github.com/TopPano/providence-engine/internal/core/ports/mocks"
	"github.com/TopPano/providence-engine/internal/engine/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRouter_DispatchesByType(t *testing.T) {
	ctrl := gomock.NewController(t)
	bus := mocks.NewMockBus(ctrl)
	log := mocks.NewMockLogger(ctrl)
	sub := mocks.NewMockSubscription(ctrl)

	var deliver ports.MessageHandler
	bus.EXPECT().Subscribe("controller.engine", "workers", gomock.Any()).
		DoAndReturn(func(_, _ string, h ports.MessageHandler) (ports.Subscription, error) {
			deliver = h
			return sub, nil
		})

	r := router.New(bus, "controller.engine", "workers", log)

	var got []router.Message
	require.True(t, r.AddRoute("BUILD", func(_ context.Context, msg router.Message) {
		got = append(got, msg)
	}))

	s, err := r.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sub, s)

	deliver([]byte(`{"type":"BUILD","channelId":"c1","payload":{"enginePackage":"eA=="}}`))

	require.Len(t, got, 1)
	assert.Equal(t, "BUILD", got[0].Type)
	assert.Equal(t, "c1", got[0].ChannelID)
	assert.JSONEq(t, `{"enginePackage":"eA=="}`, string(got[0].Payload))
}

func TestRouter_FirstRegistrationWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := router.New(mocks.NewMockBus(ctrl), "s", "", mocks.NewMockLogger(ctrl))

	var calls []string
	require.True(t, r.AddRoute("BUILD", func(context.Context, router.Message) { calls = append(calls, "first") }))
	assert.False(t, r.AddRoute("BUILD", func(context.Context, router.Message) { calls = append(calls, "second") }))

	r.Dispatch(context.Background(), []byte(`{"type":"BUILD"}`))
	assert.Equal(t, []string{"first"}, calls)
}

func TestRouter_DropsUnknownType(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("invalid message type: DEPLOY")

	r := router.New(mocks.NewMockBus(ctrl), "s", "", log)
	r.AddRoute("BUILD", func(context.Context, router.Message) {
		t.Fatal("handler must not run for another type")
	})

	r.Dispatch(context.Background(), []byte(`{"type":"DEPLOY","channelId":"c1"}`))
}

func TestRouter_DropsUndecodableMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, "dropped undecodable message")
	})

	r := router.New(mocks.NewMockBus(ctrl), "s", "", log)
	r.AddRoute("BUILD", func(context.Context, router.Message) {
		t.Fatal("handler must not run for an undecodable message")
	})

	r.Dispatch(context.Background(), []byte(`not json`))
}

func TestRouter_PassesContextToHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := router.New(mocks.NewMockBus(ctrl), "s", "", mocks.NewMockLogger(ctrl))

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	var seen any
	r.AddRoute("BUILD", func(ctx context.Context, _ router.Message) { seen = ctx.Value(key{}) })
	r.Dispatch(ctx, []byte(`{"type":"BUILD"}`))

	assert.Equal(t, "v", seen)
}

func TestRouter_StartFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	bus := mocks.NewMockBus(ctrl)
	bus.EXPECT().Subscribe("s", "", gomock.Any()).Return(nil, errors.New("not connected"))

	r := router.New(bus, "s", "", mocks.NewMockLogger(ctrl))
	_, err := r.Start(context.Background())

	require.Error(t, err)
	assert.ErrorContains(t, err, "not connected")
}
