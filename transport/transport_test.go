package transport_test

import (
	"fmt"
	"math/rand"
	"net/netip"
	"testing"
	"time"

	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/logger"
	"github.com/sabouaram/linxipc/message"
	"github.com/sabouaram/linxipc/transport"
)

func randName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, rand.Int63())
}

func TestUnixSendReceiveRoundTrip(t *testing.T) {
	serverName := randName("linxipc-test-srv")
	clientName := randName("linxipc-test-cli")

	srv, err := transport.NewUnix(serverName, logger.Discard())
	if err != nil {
		t.Fatalf("NewUnix(server) error = %v", err)
	}
	defer srv.Close()

	cli, err := transport.NewUnix(clientName, logger.Discard())
	if err != nil {
		t.Fatalf("NewUnix(client) error = %v", err)
	}
	defer cli.Close()

	m := message.New(42, []byte("hello"))
	if rc := cli.Send(m, identifier.Path(serverName)); rc != 0 {
		t.Fatalf("Send() = %d, want 0", rc)
	}

	got, from, n := srv.Receive(1000)
	if n <= 0 {
		t.Fatalf("Receive() n = %d, want > 0", n)
	}
	if got.ReqID != 42 {
		t.Errorf("ReqID = %d, want 42", got.ReqID)
	}
	if from.Name() != clientName {
		t.Errorf("sender = %q, want %q", from.Name(), clientName)
	}
}

func TestUnixReceiveTimeout(t *testing.T) {
	srv, err := transport.NewUnix(randName("linxipc-test-idle"), logger.Discard())
	if err != nil {
		t.Fatalf("NewUnix() error = %v", err)
	}
	defer srv.Close()

	start := time.Now()
	_, _, n := srv.Receive(50)
	if n != 0 {
		t.Errorf("Receive() n = %d, want 0 on timeout", n)
	}
	if time.Since(start) < 40*time.Millisecond {
		t.Error("Receive() returned before its timeout elapsed")
	}
}

func TestUDPSendReceiveRoundTrip(t *testing.T) {
	srv, err := transport.NewUDP(0, logger.Discard())
	if err != nil {
		t.Fatalf("NewUDP(server) error = %v", err)
	}
	defer srv.Close()

	cli, err := transport.NewUDP(0, logger.Discard())
	if err != nil {
		t.Fatalf("NewUDP(client) error = %v", err)
	}
	defer cli.Close()

	srvAddr := identifier.Port(netip.MustParseAddr("127.0.0.1"), srv.LocalPort())

	m := message.New(7, []byte("ping"))
	if rc := cli.Send(m, srvAddr); rc != 0 {
		t.Fatalf("Send() = %d, want 0", rc)
	}

	got, from, n := srv.Receive(1000)
	if n <= 0 {
		t.Fatalf("Receive() n = %d, want > 0", n)
	}
	if got.ReqID != 7 {
		t.Errorf("ReqID = %d, want 7", got.ReqID)
	}
	if from.PortNum() != cli.LocalPort() {
		t.Errorf("sender port = %d, want %d", from.PortNum(), cli.LocalPort())
	}
}

func TestUDPInvalidAddressRejected(t *testing.T) {
	cli, err := transport.NewUDP(0, logger.Discard())
	if err != nil {
		t.Fatalf("NewUDP() error = %v", err)
	}
	defer cli.Close()

	m := message.New(1, nil)
	to := identifier.Port(netip.IPv6Unspecified(), 9999)
	if rc := cli.Send(m, to); rc != transport.ErrInvalidAddress {
		t.Errorf("Send() with non-IPv4 address = %d, want %d", rc, transport.ErrInvalidAddress)
	}
}
