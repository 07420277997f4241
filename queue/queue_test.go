package queue_test

import (
	"syscall"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/logger"
	"github.com/sabouaram/linxipc/message"
	"github.com/sabouaram/linxipc/queue"
	"github.com/sabouaram/linxipc/selector"
)

func env(reqID uint32) queue.Envelope {
	return queue.NewEnvelope(message.New(reqID, nil), identifier.Path("peer"), nil)
}

var _ = Describe("Queue", func() {
	var q queue.Queue

	BeforeEach(func() {
		var err error
		q, err = queue.New(3, logger.Discard())
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(q.Close()).To(Succeed())
	})

	It("bounds capacity, discarding exactly one add past the limit", func() {
		Expect(q.Add(env(1))).To(Equal(0))
		Expect(q.Add(env(2))).To(Equal(0))
		Expect(q.Add(env(3))).To(Equal(0))
		Expect(q.Add(env(4))).To(Equal(-1))
		Expect(q.Size()).To(Equal(3))
	})

	It("returns the smallest-index envelope whose req id is in the selector (FIFO-by-match)", func() {
		Expect(q.Add(env(1))).To(Equal(0))
		Expect(q.Add(env(2))).To(Equal(0))
		Expect(q.Add(env(3))).To(Equal(0))

		got, ok := q.Get(0, selector.Set{2, 3}, nil)
		Expect(ok).To(BeTrue())
		Expect(got.Message.ReqID).To(Equal(uint32(2)))
		Expect(q.Size()).To(Equal(2))
	})

	It("skips non-matching envelopes without removing them", func() {
		Expect(q.Add(env(1))).To(Equal(0))
		_, ok := q.Get(0, selector.Set{99}, nil)
		Expect(ok).To(BeFalse())
		Expect(q.Size()).To(Equal(1))
	})

	It("returns nothing immediately when empty and timeout is 0", func() {
		_, ok := q.Get(0, nil, nil)
		Expect(ok).To(BeFalse())
	})

	It("wakes an infinite wait once a matching envelope is added", func() {
		done := make(chan bool, 1)
		go func() {
			_, ok := q.Get(-1, nil, nil)
			done <- ok
		}()

		time.Sleep(20 * time.Millisecond)
		Expect(q.Add(env(1))).To(Equal(0))

		Eventually(done, time.Second).Should(Receive(BeTrue()))
	})

	It("returns nothing once its deadline elapses with no match", func() {
		start := time.Now()
		_, ok := q.Get(50, nil, nil)
		Expect(ok).To(BeFalse())
		Expect(time.Since(start)).To(BeNumerically(">=", 45*time.Millisecond))
	})

	It("clears pending envelopes without affecting further adds", func() {
		Expect(q.Add(env(1))).To(Equal(0))
		q.Clear()
		Expect(q.Size()).To(Equal(0))
		Expect(q.Add(env(2))).To(Equal(0))
	})

	It("wakes blocked waiters and rejects further adds once stopped", func() {
		done := make(chan bool, 1)
		go func() {
			_, ok := q.Get(-1, nil, nil)
			done <- ok
		}()

		time.Sleep(20 * time.Millisecond)
		q.Stop()

		Eventually(done, time.Second).Should(Receive(BeFalse()))
		Expect(q.Add(env(1))).To(Equal(-1))
	})

	It("keeps its event descriptor readable exactly once per queued envelope", func() {
		fd := q.FD()
		Expect(fd).To(BeNumerically(">=", 0))
		Expect(q.Add(env(1))).To(Equal(0))
		Expect(q.Add(env(2))).To(Equal(0))
		_, ok := q.Get(0, nil, nil)
		Expect(ok).To(BeTrue())
		Expect(q.Size()).To(Equal(1))

		buf := make([]byte, 8)
		_, err := syscall.Read(fd, buf)
		Expect(err).NotTo(HaveOccurred())
		_, err = syscall.Read(fd, buf)
		Expect(err).To(MatchError(syscall.EAGAIN))
	})
})
