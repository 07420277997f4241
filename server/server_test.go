package server_test

import (
	"fmt"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/logger"
	"github.com/sabouaram/linxipc/message"
	"github.com/sabouaram/linxipc/selector"
	"github.com/sabouaram/linxipc/server"
	"github.com/sabouaram/linxipc/transport"
)

func randServerName() string {
	return fmt.Sprintf("linxipc-server-%d", rand.Int63())
}

var _ = Describe("Server", func() {
	var name string

	BeforeEach(func() {
		name = randServerName()
	})

	It("starts and stops idempotently", func() {
		srv, err := server.NewSimpleServer(name)
		Expect(err).NotTo(HaveOccurred())

		Expect(srv.Start()).To(BeTrue())
		Expect(srv.Start()).To(BeTrue())
		Expect(srv.IsRunning()).To(BeTrue())

		srv.Stop()
		srv.Stop()
		Expect(srv.IsRunning()).To(BeFalse())
	})

	It("reports gone only once it has been stopped", func() {
		srv, err := server.NewSimpleServer(name)
		Expect(err).NotTo(HaveOccurred())
		Expect(srv.Start()).To(BeTrue())

		Expect(srv.IsGone()).To(BeFalse())
		srv.Stop()
		Expect(srv.IsGone()).To(BeTrue())
	})

	It("answers PING_REQ inline without delivering it to a queue consumer", func() {
		srv, err := server.NewQueuedServer(name, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(srv.Start()).To(BeTrue())
		defer srv.Stop()

		peerName := randServerName()
		peer, err := transport.NewUnix(peerName, logger.Discard())
		Expect(err).NotTo(HaveOccurred())
		defer peer.Close()

		Expect(peer.Send(message.New(message.PingReq, nil), identifier.Path(name))).To(Equal(0))

		rsp, _, n := peer.Receive(500)
		Expect(n).To(BeNumerically(">", 0))
		Expect(rsp.ReqID).To(Equal(message.PingRsp))

		_, ok := srv.Receive(50, nil, nil)
		Expect(ok).To(BeFalse())
	})

	It("delivers a send/receive/respond round trip through CreateClient", func() {
		srv, err := server.NewQueuedServer(name, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(srv.Start()).To(BeTrue())
		defer srv.Stop()

		peerName := randServerName()
		peer, err := transport.NewUnix(peerName, logger.Discard())
		Expect(err).NotTo(HaveOccurred())
		defer peer.Close()

		Expect(peer.Send(message.New(42, []byte("ping me back")), identifier.Path(name))).To(Equal(0))

		env, ok := srv.Receive(500, selector.Set{42}, nil)
		Expect(ok).To(BeTrue())
		Expect(env.Message.ReqID).To(Equal(uint32(42)))
		Expect(env.From.Name()).To(Equal(peerName))

		Expect(env.SendResponse(message.New(43, []byte("ack")))).To(Equal(0))

		reply, _, n := peer.Receive(500)
		Expect(n).To(BeNumerically(">", 0))
		Expect(reply.ReqID).To(Equal(uint32(43)))
		Expect(string(reply.Payload)).To(Equal("ack"))
	})

	It("drops and reports a delivery once the queue is full", func() {
		srv, err := server.NewQueuedServer(name, 1)
		Expect(err).NotTo(HaveOccurred())

		var notices []string
		srv.RegisterFuncInfo(func(msg string, _ server.ConnState) {
			notices = append(notices, msg)
		})

		Expect(srv.Start()).To(BeTrue())
		defer srv.Stop()

		peerName := randServerName()
		peer, err := transport.NewUnix(peerName, logger.Discard())
		Expect(err).NotTo(HaveOccurred())
		defer peer.Close()

		for i := 0; i < 5; i++ {
			Expect(peer.Send(message.New(uint32(100+i), nil), identifier.Path(name))).To(Equal(0))
		}

		Eventually(func() []string { return notices }, time.Second).Should(ContainElement(ContainSubstring("queue full")))
	})

	It("answers pings and serves Receive directly with no queue", func() {
		srv, err := server.NewSimpleServer(name)
		Expect(err).NotTo(HaveOccurred())
		Expect(srv.Start()).To(BeTrue())
		defer srv.Stop()

		peerName := randServerName()
		peer, err := transport.NewUnix(peerName, logger.Discard())
		Expect(err).NotTo(HaveOccurred())
		defer peer.Close()

		Expect(peer.Send(message.New(message.PingReq, nil), identifier.Path(name))).To(Equal(0))
		Expect(peer.Send(message.New(7, []byte("hi")), identifier.Path(name))).To(Equal(0))

		env, ok := srv.Receive(500, nil, nil)
		Expect(ok).To(BeTrue())
		Expect(env.Message.ReqID).To(Equal(uint32(7)))

		rsp, _, n := peer.Receive(500)
		Expect(n).To(BeNumerically(">", 0))
		Expect(rsp.ReqID).To(Equal(message.PingRsp))
	})

	It("returns promptly from a direct-mode Receive when the socket is closed mid-poll", func() {
		srv, err := server.NewSimpleServer(name)
		Expect(err).NotTo(HaveOccurred())
		Expect(srv.Start()).To(BeTrue())

		go func() {
			time.Sleep(50 * time.Millisecond)
			srv.Stop()
		}()

		start := time.Now()
		_, ok := srv.Receive(5000, nil, nil)
		Expect(ok).To(BeFalse())
		Expect(time.Since(start)).To(BeNumerically("<", 2*time.Second))
	})

	It("lets CreateClient's handle connect and exchange with the server", func() {
		srv, err := server.NewQueuedServer(name, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(srv.Start()).To(BeTrue())
		defer srv.Stop()

		peerName := randServerName()
		peerSrv, err := server.NewQueuedServer(peerName, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(peerSrv.Start()).To(BeTrue())
		defer peerSrv.Stop()

		c := srv.CreateClient(identifier.Path(peerName))
		Expect(c.Connect(1000)).To(BeTrue())
	})
})
