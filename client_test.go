package telnet_test

import (
	"bytes"
	"compress/zlib"
	"context"
	"io"
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mudproto/telnet"
)

var _ = Describe("Client", func() {
	var (
		serverConn net.Conn
		clientConn net.Conn
		client     *telnet.Client
		chunks     chan cleanChunk
		done       chan error
		cancel     context.CancelFunc
	)

	BeforeEach(func() {
		serverConn, clientConn = net.Pipe()
		chunks = make(chan cleanChunk, 16)

		var err error
		client, err = telnet.NewClient(clientConn, telnet.Config{
			Logger: testLogger,
			Debug:  true,
			Hooks: telnet.EventHooks{
				IncomingData: func(data []byte, goAhead bool) {
					chunks <- cleanChunk{data: bytes.Clone(data), goAhead: goAhead}
				},
			},
		})
		Expect(err).NotTo(HaveOccurred())

		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		done = make(chan error, 1)
		go func() {
			defer GinkgoRecover()
			done <- client.Run(ctx)
		}()
	})

	AfterEach(func() {
		cancel()
		Eventually(done).Should(Receive(BeNil()))
		serverConn.Close()
	})

	It("answers option negotiation over the connection", func() {
		_, err := serverConn.Write([]byte{telnet.IAC, telnet.DO, telnet.OptNAWS})
		Expect(err).NotTo(HaveOccurred())

		// WILL NAWS followed by the activation size announcement
		reply := make([]byte, 12)
		_, err = io.ReadFull(serverConn, reply)
		Expect(err).NotTo(HaveOccurred())
		Expect(reply).To(Equal([]byte{
			telnet.IAC, telnet.WILL, telnet.OptNAWS,
			telnet.IAC, telnet.SB, telnet.OptNAWS,
			0x00, 0x00, 0x00, 0x00,
			telnet.IAC, telnet.SE,
		}))
	})

	It("delivers cleaned chunks from the connection", func() {
		go io.Copy(io.Discard, serverConn)

		_, err := serverConn.Write([]byte{'h', 'i', telnet.IAC, telnet.GA})
		Expect(err).NotTo(HaveOccurred())

		var chunk cleanChunk
		Eventually(chunks).Should(Receive(&chunk))
		Expect(string(chunk.data)).To(Equal("hi"))
		Expect(chunk.goAhead).To(BeTrue())
	})

	It("switches to the inflated stream when MCCP2 starts", func() {
		go io.Copy(io.Discard, serverConn)

		_, err := serverConn.Write([]byte{telnet.IAC, telnet.WILL, telnet.OptCompress2})
		Expect(err).NotTo(HaveOccurred())

		var compressed bytes.Buffer
		zw := zlib.NewWriter(&compressed)
		_, err = zw.Write([]byte("You feel refreshed.\r\n"))
		Expect(err).NotTo(HaveOccurred())
		_, err = zw.Write([]byte{telnet.IAC, telnet.GA})
		Expect(err).NotTo(HaveOccurred())
		Expect(zw.Flush()).To(Succeed())

		// the compressed stream begins immediately after IAC SB COMPRESS2
		// IAC SE, within the same delivery
		payload := []byte{telnet.IAC, telnet.SB, telnet.OptCompress2, telnet.IAC, telnet.SE}
		payload = append(payload, compressed.Bytes()...)
		_, err = serverConn.Write(payload)
		Expect(err).NotTo(HaveOccurred())

		var chunk cleanChunk
		Eventually(chunks).Should(Receive(&chunk))
		Expect(string(chunk.data)).To(Equal("You feel refreshed.\r\n"))
		Expect(chunk.goAhead).To(BeTrue())
	})
})
