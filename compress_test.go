package telnet_test

import (
	"bytes"
	"compress/zlib"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mudproto/telnet"
)

var _ = Describe("Decompressor", func() {
	deflate := func(data []byte) []byte {
		var compressed bytes.Buffer
		zw := zlib.NewWriter(&compressed)
		_, err := zw.Write(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(zw.Flush()).To(Succeed())
		return compressed.Bytes()
	}

	It("inflates a sync-flushed zlib stream", func() {
		var d telnet.Decompressor
		Expect(d.Begin(bytes.NewReader(deflate([]byte("a whiff of pine"))))).To(Succeed())
		Expect(d.Active()).To(BeTrue())

		var inflated []byte
		var err error
		out := make([]byte, 64)
		for err == nil {
			var n int
			n, err = d.Read(out)
			inflated = append(inflated, out[:n]...)
		}

		Expect(string(inflated)).To(Equal("a whiff of pine"))
		// the source ran dry mid-stream, which is terminal
		Expect(err).To(MatchError(telnet.ErrCompressionCorrupt))
		Expect(d.Active()).To(BeFalse())
	})

	It("fails to start on a garbage stream header", func() {
		var d telnet.Decompressor
		err := d.Begin(bytes.NewReader([]byte{0x00, 0x01, 0x02, 0x03}))

		Expect(err).To(MatchError(telnet.ErrCompressionInit))
		Expect(d.Active()).To(BeFalse())
	})

	It("refuses to start twice", func() {
		var d telnet.Decompressor
		Expect(d.Begin(bytes.NewReader(deflate([]byte("x"))))).To(Succeed())

		err := d.Begin(bytes.NewReader(deflate([]byte("y"))))
		Expect(err).To(MatchError(telnet.ErrCompressionInit))
	})

	It("returns to inactive on End", func() {
		var d telnet.Decompressor
		Expect(d.Begin(bytes.NewReader(deflate([]byte("x"))))).To(Succeed())

		d.End()
		Expect(d.Active()).To(BeFalse())
	})
})
