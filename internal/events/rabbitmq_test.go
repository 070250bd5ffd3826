package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	return m.Called(name, kind, durable, autoDelete, internal, noWait, args).Error(0)
}

func (m *MockChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(exchange, key, mandatory, immediate, msg).Error(0)
}

func (m *MockChannel) Close() error {
	return m.Called().Error(0)
}

func TestRabbitPublisher_Publish(t *testing.T) {
	ch := new(MockChannel)
	ch.On("ExchangeDeclare", "users-table", "topic", true, false, false, false, amqp.Table(nil)).Return(nil)

	var published amqp.Publishing
	ch.On("Publish", "users-table", "user.deleted", false, false, mock.AnythingOfType("amqp.Publishing")).
		Run(func(args mock.Arguments) {
			published = args.Get(4).(amqp.Publishing)
		}).
		Return(nil)

	p, err := newRabbitPublisher(ch, "users-table")
	require.NoError(t, err)

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	err = p.Publish(context.Background(), Event{Type: UserDeleted, UserID: "7", At: at})
	require.NoError(t, err)

	assert.Equal(t, "application/json", published.ContentType)
	assert.Equal(t, uint8(amqp.Persistent), published.DeliveryMode)
	assert.Equal(t, at, published.Timestamp)

	var got Event
	require.NoError(t, json.Unmarshal(published.Body, &got))
	assert.Equal(t, UserDeleted, got.Type)
	assert.Equal(t, "7", got.UserID)
	ch.AssertExpectations(t)
}

func TestRabbitPublisher_PublishError(t *testing.T) {
	ch := new(MockChannel)
	ch.On("ExchangeDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ch.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	p, err := newRabbitPublisher(ch, "users-table")
	require.NoError(t, err)

	err = p.Publish(context.Background(), Event{Type: TableSorted})
	assert.ErrorContains(t, err, "channel closed")
}

func TestRabbitPublisher_PublishCancelled(t *testing.T) {
	ch := new(MockChannel)
	ch.On("ExchangeDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	p, err := newRabbitPublisher(ch, "users-table")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = p.Publish(ctx, Event{Type: TableSorted})
	assert.ErrorIs(t, err, context.Canceled)
	ch.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNewRabbitPublisher_DeclareError(t *testing.T) {
	ch := new(MockChannel)
	ch.On("ExchangeDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("access refused"))

	p, err := newRabbitPublisher(ch, "users-table")
	assert.Error(t, err)
	assert.Nil(t, p)
}

func TestRabbitPublisher_Close(t *testing.T) {
	ch := new(MockChannel)
	ch.On("ExchangeDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ch.On("Close").Return(nil)

	p, err := newRabbitPublisher(ch, "users-table")
	require.NoError(t, err)
	assert.NoError(t, p.Close())
	ch.AssertExpectations(t)
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.Publish(context.Background(), Event{Type: ThemeChanged}))
}
