package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type fakeReader struct {
	msgs   chan kafka.Message
	errs   chan error
	closed bool
}

func (f *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	case err := <-f.errs:
		return kafka.Message{}, err
	case m := <-f.msgs:
		return m, nil
	}
}

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

type recordingHandler struct {
	mu   sync.Mutex
	keys []string
	fail bool
}

func (h *recordingHandler) HandleMessage(key string, message []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.keys = append(h.keys, key)
	if h.fail {
		return errors.New("smtp down")
	}
	return nil
}

func (h *recordingHandler) seen() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.keys...)
}

func TestKafkaConsumer_ListenDispatchesUntilCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := &fakeReader{msgs: make(chan kafka.Message, 3), errs: make(chan error, 1)}
	h := &recordingHandler{fail: true}
	kc := newConsumer(r, h, zap.NewNop())
	kc.retryDelay = time.Millisecond

	r.msgs <- kafka.Message{Key: []byte("contact.message_received"), Value: []byte(`{}`)}
	r.errs <- errors.New("broker hiccup")
	r.msgs <- kafka.Message{Key: []byte("techguild.track_joined"), Value: []byte(`{}`)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- kc.Listen(ctx) }()

	require.Eventually(t, func() bool { return len(h.seen()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.ElementsMatch(t, []string{"contact.message_received", "techguild.track_joined"}, h.seen())
	require.NoError(t, kc.Close())
	assert.True(t, r.closed)
}

func TestProducer_NilIsNoop(t *testing.T) {
	p := NewProducer("", "topic", "", "", nil)
	assert.Nil(t, p)
	assert.NoError(t, p.PublishMessage([]byte("k"), []byte("v")))
	assert.NoError(t, p.Close())
}

func TestProducer_SASLOnlyWithCredentials(t *testing.T) {
	plain := NewProducer("localhost:9092", "t", "", "", nil)
	require.NotNil(t, plain)
	assert.Nil(t, plain.writer.Transport)

	secured := NewProducer("localhost:9092", "t", "user", "pass", nil)
	require.NotNil(t, secured)
	assert.NotNil(t, secured.writer.Transport)
	assert.NoError(t, plain.Close())
	assert.NoError(t, secured.Close())
}
