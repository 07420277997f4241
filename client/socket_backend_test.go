package client_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/sabouaram/linxipc/client"
	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/logger"
	"github.com/sabouaram/linxipc/message"
	"github.com/sabouaram/linxipc/transport"
)

func TestSocketBackedClientDiscardsNonPeerTraffic(t *testing.T) {
	peerName := fmt.Sprintf("linxipc-client-peer-%d", rand.Int63())
	strangerName := fmt.Sprintf("linxipc-client-stranger-%d", rand.Int63())
	clientName := fmt.Sprintf("linxipc-client-self-%d", rand.Int63())

	clientSock, err := transport.NewUnix(clientName, logger.Discard())
	if err != nil {
		t.Fatalf("NewUnix(client) error = %v", err)
	}
	defer clientSock.Close()

	stranger, err := transport.NewUnix(strangerName, logger.Discard())
	if err != nil {
		t.Fatalf("NewUnix(stranger) error = %v", err)
	}
	defer stranger.Close()

	peer, err := transport.NewUnix(peerName, logger.Discard())
	if err != nil {
		t.Fatalf("NewUnix(peer) error = %v", err)
	}
	defer peer.Close()

	c := client.New(clientSock, identifier.Path(peerName), logger.Discard())

	if rc := stranger.Send(message.New(1, nil), identifier.Path(clientName)); rc != 0 {
		t.Fatalf("stranger Send() = %d, want 0", rc)
	}
	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = peer.Send(message.New(1, []byte("from peer")), identifier.Path(clientName))
	}()

	got, ok := c.Receive(500, nil)
	if !ok {
		t.Fatal("Receive() ok = false, want true")
	}
	if string(got.Payload) != "from peer" {
		t.Errorf("Payload = %q, want %q", got.Payload, "from peer")
	}
}
