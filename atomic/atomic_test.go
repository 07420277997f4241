package atomic_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libatm "github.com/sabouaram/linxipc/atomic"
)

var _ = Describe("Value[T]", func() {
	It("Load returns the default-load value until the first Store", func() {
		v := libatm.NewValueDefault[int](42, 99)
		Expect(v.Load()).To(Equal(42))
	})

	It("Store substitutes the default-store value for a zero argument", func() {
		v := libatm.NewValueDefault[int](1, 7)
		v.Store(0)
		Expect(v.Load()).To(Equal(7))
		v.Store(10)
		Expect(v.Load()).To(Equal(10))
	})

	It("Swap returns the previous value and honors default-store for zero", func() {
		v := libatm.NewValueDefault[string]("L", "S")
		old := v.Swap("")
		Expect(old).To(Equal("L"))
		Expect(v.Load()).To(Equal("S"))

		old = v.Swap("B")
		Expect(old).To(Equal("S"))
		Expect(v.Load()).To(Equal("B"))
	})

	It("CompareAndSwap treats zero old/new as the default-store value", func() {
		v := libatm.NewValueDefault[int](100, 5)
		v.Store(0)
		Expect(v.Load()).To(Equal(5))

		Expect(v.CompareAndSwap(0, 0)).To(BeTrue())
		Expect(v.Load()).To(Equal(5))

		Expect(v.CompareAndSwap(5, 8)).To(BeTrue())
		Expect(v.Load()).To(Equal(8))

		Expect(v.CompareAndSwap(5, 9)).To(BeFalse())
		Expect(v.Load()).To(Equal(8))
	})
})
