package callqueue_test

import (
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gmodtools/gmollama/pkg/callqueue"
)

var _ = Describe("Queue", func() {
	var q *callqueue.Queue[string]

	noop := func(err error, data string) {}

	BeforeEach(func() {
		q = callqueue.New[string]()
	})

	Describe("Enqueue", func() {
		It("mints strictly increasing identifiers", func() {
			a := q.Enqueue(noop)
			b := q.Enqueue(noop)
			c := q.Enqueue(noop)

			Expect(b).To(BeNumerically(">", a))
			Expect(c).To(BeNumerically(">", b))
		})

		It("holds the record until it is drained", func() {
			q.Enqueue(noop)

			Expect(q.Len()).To(Equal(1))
		})
	})

	Describe("Complete", func() {
		It("accepts the first outcome for an id", func() {
			id := q.Enqueue(noop)

			Expect(q.Complete(id, callqueue.Outcome[string]{Data: "ok"})).To(BeTrue())
		})

		It("drops a second outcome for the same id", func() {
			id := q.Enqueue(noop)

			Expect(q.Complete(id, callqueue.Outcome[string]{Data: "first"})).To(BeTrue())
			Expect(q.Complete(id, callqueue.Outcome[string]{Data: "second"})).To(BeFalse())

			ready := q.DrainReady()
			Expect(ready).To(HaveLen(1))
			Expect(ready[0].Outcome.Data).To(Equal("first"))
		})

		It("drops outcomes for unknown ids", func() {
			Expect(q.Complete(callqueue.ID(42), callqueue.Outcome[string]{Data: "x"})).To(BeFalse())
		})

		It("drops outcomes for already drained ids", func() {
			id := q.Enqueue(noop)
			q.Complete(id, callqueue.Outcome[string]{Data: "x"})
			q.DrainReady()

			Expect(q.Complete(id, callqueue.Outcome[string]{Data: "y"})).To(BeFalse())
		})
	})

	Describe("DrainReady", func() {
		It("returns nothing when no record has an outcome", func() {
			q.Enqueue(noop)

			Expect(q.DrainReady()).To(BeEmpty())
		})

		It("never returns a record whose outcome is unset", func() {
			q.Enqueue(noop)
			done := q.Enqueue(noop)
			q.Complete(done, callqueue.Outcome[string]{Data: "done"})

			ready := q.DrainReady()
			Expect(ready).To(HaveLen(1))
			Expect(ready[0].Outcome.Data).To(Equal("done"))
			Expect(q.Len()).To(Equal(1))
		})

		It("returns records in completion order, not issuance order", func() {
			first := q.Enqueue(noop)
			second := q.Enqueue(noop)
			third := q.Enqueue(noop)

			q.Complete(third, callqueue.Outcome[string]{Data: "c"})
			q.Complete(first, callqueue.Outcome[string]{Data: "a"})
			q.Complete(second, callqueue.Outcome[string]{Data: "b"})

			ready := q.DrainReady()
			Expect(ready).To(HaveLen(3))
			Expect(ready[0].Outcome.Data).To(Equal("c"))
			Expect(ready[1].Outcome.Data).To(Equal("a"))
			Expect(ready[2].Outcome.Data).To(Equal("b"))
		})

		It("returns each record at most once", func() {
			id := q.Enqueue(noop)
			q.Complete(id, callqueue.Outcome[string]{Data: "once"})

			Expect(q.DrainReady()).To(HaveLen(1))
			Expect(q.DrainReady()).To(BeEmpty())
			Expect(q.Len()).To(BeZero())
		})

		It("carries error outcomes through unchanged", func() {
			id := q.Enqueue(noop)
			boom := errors.New("connection refused")
			q.Complete(id, callqueue.Outcome[string]{Err: boom})

			ready := q.DrainReady()
			Expect(ready).To(HaveLen(1))
			Expect(ready[0].Outcome.Err).To(MatchError(boom))
			Expect(ready[0].Outcome.Data).To(BeEmpty())
		})
	})

	Describe("concurrent completion", func() {
		It("delivers every outcome exactly once", func() {
			const n = 128

			ids := make([]callqueue.ID, n)
			for i := range ids {
				ids[i] = q.Enqueue(noop)
			}

			var wg sync.WaitGroup
			for _, id := range ids {
				wg.Add(1)
				go func(id callqueue.ID) {
					defer wg.Done()
					q.Complete(id, callqueue.Outcome[string]{Data: "done"})
				}(id)
			}
			wg.Wait()

			ready := q.DrainReady()
			Expect(ready).To(HaveLen(n))
			Expect(q.Len()).To(BeZero())
		})

		It("tolerates draining while completions are in flight", func() {
			const n = 64

			ids := make([]callqueue.ID, n)
			for i := range ids {
				ids[i] = q.Enqueue(noop)
			}

			var wg sync.WaitGroup
			for _, id := range ids {
				wg.Add(1)
				go func(id callqueue.ID) {
					defer wg.Done()
					q.Complete(id, callqueue.Outcome[string]{Data: "done"})
				}(id)
			}

			total := 0
			for q.Len() > 0 {
				total += len(q.DrainReady())
			}
			wg.Wait()
			total += len(q.DrainReady())

			Expect(total).To(Equal(n))
		})
	})
})
