package dispatcher_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/sabouaram/linxipc/dispatcher"
	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/logger"
	"github.com/sabouaram/linxipc/message"
	"github.com/sabouaram/linxipc/queue"
	"github.com/sabouaram/linxipc/server"
	"github.com/sabouaram/linxipc/transport"
)

func randName(prefix string) string {
	return fmt.Sprintf("linxipc-dispatcher-%s-%d", prefix, rand.Int63())
}

func TestHandleMessageDispatchesToRegisteredCallback(t *testing.T) {
	name := randName("svc")
	srv, err := server.NewQueuedServer(name, 4)
	if err != nil {
		t.Fatalf("NewQueuedServer() error = %v", err)
	}
	if !srv.Start() {
		t.Fatal("Start() = false")
	}
	defer srv.Stop()

	d := dispatcher.New(srv, logger.Discard())

	var got queue.Envelope
	called := false
	d.Register(1, func(env queue.Envelope, userData any) int {
		got = env
		called = true
		if userData != "marker" {
			t.Errorf("userData = %v, want %q", userData, "marker")
		}
		return 0
	}, "marker")

	peerName := randName("peer")
	peer, err := transport.NewUnix(peerName, logger.Discard())
	if err != nil {
		t.Fatalf("NewUnix() error = %v", err)
	}
	defer peer.Close()

	if rc := peer.Send(message.New(1, []byte("abc")), identifier.Path(name)); rc != 0 {
		t.Fatalf("Send() = %d, want 0", rc)
	}

	if rc := d.HandleMessage(500); rc != 0 {
		t.Fatalf("HandleMessage() = %d, want 0", rc)
	}
	if !called {
		t.Fatal("callback was not invoked")
	}
	if string(got.Message.Payload) != "abc" {
		t.Errorf("Payload = %q, want %q", got.Message.Payload, "abc")
	}
}

func TestHandleMessageReturnsMinusOneOnTimeout(t *testing.T) {
	name := randName("svc")
	srv, err := server.NewQueuedServer(name, 4)
	if err != nil {
		t.Fatalf("NewQueuedServer() error = %v", err)
	}
	if !srv.Start() {
		t.Fatal("Start() = false")
	}
	defer srv.Stop()

	d := dispatcher.New(srv, logger.Discard())
	if rc := d.HandleMessage(20); rc != -1 {
		t.Errorf("HandleMessage() = %d, want -1", rc)
	}
}

func TestHandleMessageWithNoBindingLogsAndReturnsZero(t *testing.T) {
	name := randName("svc")
	srv, err := server.NewQueuedServer(name, 4)
	if err != nil {
		t.Fatalf("NewQueuedServer() error = %v", err)
	}
	if !srv.Start() {
		t.Fatal("Start() = false")
	}
	defer srv.Stop()

	d := dispatcher.New(srv, logger.Discard())

	peerName := randName("peer")
	peer, err := transport.NewUnix(peerName, logger.Discard())
	if err != nil {
		t.Fatalf("NewUnix() error = %v", err)
	}
	defer peer.Close()

	if rc := peer.Send(message.New(99, nil), identifier.Path(name)); rc != 0 {
		t.Fatalf("Send() = %d, want 0", rc)
	}

	if rc := d.HandleMessage(500); rc != 0 {
		t.Errorf("HandleMessage() = %d, want 0", rc)
	}
}

func TestRegisterIsFluent(t *testing.T) {
	name := randName("svc")
	srv, err := server.NewQueuedServer(name, 4)
	if err != nil {
		t.Fatalf("NewQueuedServer() error = %v", err)
	}
	defer srv.Stop()

	d := dispatcher.New(srv, logger.Discard())
	same := d.Register(1, func(queue.Envelope, any) int { return 0 }, nil).
		Register(2, func(queue.Envelope, any) int { return 0 }, nil)

	if same != d {
		t.Error("Register() did not return the same Dispatcher for chaining")
	}
}
