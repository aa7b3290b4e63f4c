package events

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("buffer", Ordered, func() {
	Context("buffer", func() {
		It("add successfully", func() {
			buffer := newBuffer()

			err := buffer.PushBack(&message{Kind: NotificationKind, Data: []byte("msg1")})
			Expect(err).To(BeNil())
			Expect(buffer.Size()).To(Equal(1))
			Expect(buffer.head).NotTo(BeNil())
			Expect(buffer.tail).NotTo(BeNil())

			err = buffer.PushBack(&message{Kind: NotificationKind, Data: []byte("msg2")})
			Expect(err).To(BeNil())
			Expect(buffer.Size()).To(Equal(2))

			Expect(buffer.head.Data).To(Equal([]byte("msg1")))
			Expect(buffer.tail.Data).To(Equal([]byte("msg2")))

			err = buffer.PushBack(&message{Kind: NotificationKind, Data: []byte("msg3")})
			Expect(err).To(BeNil())
			Expect(buffer.Size()).To(Equal(3))

			Expect(buffer.head.Data).To(Equal([]byte("msg1")))
			Expect(buffer.tail.Data).To(Equal([]byte("msg3")))
		})

		It("pop in fifo order", func() {
			buffer := newBuffer()

			err := buffer.PushBack(&message{Kind: SessionClearedKind, Data: []byte("msg1")})
			Expect(err).To(BeNil())
			err = buffer.PushBack(&message{Kind: SessionClearedKind, Data: []byte("msg2")})
			Expect(err).To(BeNil())
			err = buffer.PushBack(&message{Kind: SessionClearedKind, Data: []byte("msg3")})
			Expect(err).To(BeNil())

			msg := buffer.Pop()
			Expect(msg.Data).To(Equal([]byte("msg1")))
			Expect(buffer.Size()).To(Equal(2))

			msg = buffer.Pop()
			Expect(msg.Data).To(Equal([]byte("msg2")))

			msg = buffer.Pop()
			Expect(msg.Data).To(Equal([]byte("msg3")))
			Expect(buffer.Size()).To(Equal(0))

			Expect(buffer.Pop()).To(BeNil())
			Expect(buffer.head).To(BeNil())
			Expect(buffer.tail).To(BeNil())
		})
	})
})
