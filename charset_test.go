package telnet_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mudproto/telnet"
)

var _ = Describe("Charset", func() {
	It("resolves the default code page through the IANA index", func() {
		charset, err := telnet.NewCharset("latin1", nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(charset.Name()).To(Equal("ISO_8859-1:1987"))
	})

	It("fails on an unknown code page", func() {
		_, err := telnet.NewCharset("no-such-charset", nil)

		Expect(err).To(HaveOccurred())
	})

	It("only supports listed encodings, case-insensitively", func() {
		charset, err := telnet.NewCharset("US-ASCII", []string{"UTF-8", "ISO-8859-1"})
		Expect(err).NotTo(HaveOccurred())

		Expect(charset.Supports([]byte("utf-8"))).To(BeTrue())
		Expect(charset.Supports([]byte("ISO-8859-1"))).To(BeTrue())
		Expect(charset.Supports([]byte("US-ASCII"))).To(BeFalse())
		Expect(charset.Supports([]byte("KLINGON"))).To(BeFalse())
	})

	It("defaults the supported list to the default code page", func() {
		charset, err := telnet.NewCharset("UTF-8", nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(charset.SupportedEncodings()).To(Equal([]string{"UTF-8"}))
	})

	It("switches the active encoding by name", func() {
		charset, err := telnet.NewCharset("US-ASCII", []string{"UTF-8"})
		Expect(err).NotTo(HaveOccurred())

		Expect(charset.SetEncodingForName([]byte("UTF-8"))).To(Succeed())
		Expect(charset.Name()).To(Equal("UTF-8"))
	})

	It("encodes and decodes through the negotiated charset", func() {
		charset, err := telnet.NewCharset("ISO-8859-1", nil)
		Expect(err).NotTo(HaveOccurred())

		wire, err := charset.Encode("café")
		Expect(err).NotTo(HaveOccurred())
		Expect(wire).To(Equal([]byte{'c', 'a', 'f', 0xe9}))

		text, err := charset.Decode(wire)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("café"))
	})

	It("passes UTF-8 through unchanged", func() {
		charset, err := telnet.NewCharset("UTF-8", nil)
		Expect(err).NotTo(HaveOccurred())

		wire, err := charset.Encode("héllo ☺")
		Expect(err).NotTo(HaveOccurred())
		Expect(string(wire)).To(Equal("héllo ☺"))

		text, err := charset.Decode(wire)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("héllo ☺"))
	})
})
