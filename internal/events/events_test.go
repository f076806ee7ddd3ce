package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := new(MockWriter)
	var written []kafka.Message
	writer.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]kafka.Message) }).
		Return(nil)

	p := NewKafkaPublisher(writer, zap.NewNop())
	err := p.Publish(context.Background(), New(TypeListingSold, "prop-1", map[string]string{"buyer_id": "b"}))
	require.NoError(t, err)

	require.Len(t, written, 1)
	assert.Equal(t, "prop-1", string(written[0].Key))
	assert.Equal(t, TypeListingSold, string(written[0].Headers[0].Value))

	var decoded Event
	require.NoError(t, json.Unmarshal(written[0].Value, &decoded))
	assert.Equal(t, TypeListingSold, decoded.Type)
	writer.AssertExpectations(t)
}

func TestKafkaPublisher_PublishNothing(t *testing.T) {
	writer := new(MockWriter)
	p := NewKafkaPublisher(writer, nil)

	assert.NoError(t, p.Publish(context.Background()))
	writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestKafkaPublisher_WrapsWriteError(t *testing.T) {
	writer := new(MockWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	p := NewKafkaPublisher(writer, zap.NewNop())
	err := p.Publish(context.Background(), New(TypeWalletDeposit, "user-1", nil))

	assert.ErrorContains(t, err, "broker down")
}

func TestPublishLogged_SwallowsErrors(t *testing.T) {
	writer := new(MockWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	assert.NotPanics(t, func() {
		PublishLogged(context.Background(), NewKafkaPublisher(writer, nil), zap.NewNop(), New(TypeWalletDeposit, "u", nil))
	})
}
