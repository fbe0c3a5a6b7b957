package realtime

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn simula una conexión websocket: ReadMessage bloquea hasta Close.
type fakeConn struct {
	mu      sync.Mutex
	written [][]byte
	closed  chan struct{}
	once    sync.Once
}

func newFakeConn() *fakeConn { return &fakeConn{closed: make(chan struct{})} }

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	select {
	case <-f.closed:
		return errors.New("closed")
	default:
	}
	f.written = append(f.written, data)
	return nil
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	<-f.closed
	return 0, nil, errors.New("closed")
}

func (f *fakeConn) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeConn) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.written))
	for _, w := range f.written {
		out = append(out, string(w))
	}
	return out
}

func serve(t *testing.T, h *Hub, initial []byte) (*fakeConn, chan struct{}) {
	t.Helper()
	conn := newFakeConn()
	done := make(chan struct{})
	n := h.Len()
	go func() {
		h.Serve(conn, initial)
		close(done)
	}()
	require.Eventually(t, func() bool { return h.Len() == n+1 }, time.Second, 5*time.Millisecond)
	return conn, done
}

// ──────────────────────────────────────────────────────────────────────────────

func TestHub_DifundeATodosLosClientes(t *testing.T) {
	h := NewHub(zerolog.Nop())
	a, _ := serve(t, h, []byte("hello"))
	b, _ := serve(t, h, nil)

	h.Broadcast([]byte(`{"type":"dashboard-update"}`))

	require.Eventually(t, func() bool { return len(a.messages()) == 2 && len(b.messages()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"hello", `{"type":"dashboard-update"}`}, a.messages())
	assert.Equal(t, []string{`{"type":"dashboard-update"}`}, b.messages())
}

func TestHub_DesregistraAlCerrar(t *testing.T) {
	h := NewHub(zerolog.Nop())
	conn, done := serve(t, h, nil)

	require.NoError(t, conn.Close())
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Serve no terminó tras cerrar la conexión")
	}
	assert.Zero(t, h.Len())

	// Broadcast sin clientes no debe bloquear ni fallar.
	h.Broadcast([]byte("x"))
}

func TestHub_BroadcastNoBloqueaConClienteLento(t *testing.T) {
	h := NewHub(zerolog.Nop())
	c := &client{id: "lent", conn: newFakeConn(), send: make(chan []byte, 1)}
	h.clients[c.id] = c

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			h.Broadcast([]byte("m"))
		}
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Broadcast bloqueó con la cola llena")
	}
	assert.Len(t, c.send, 1)
}
