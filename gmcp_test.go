package telnet_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mudproto/telnet"
)

var _ = Describe("GMCP", func() {
	Describe("ParseGMCPMessage", func() {
		It("parses a bare message name", func() {
			msg, err := telnet.ParseGMCPMessage([]byte("Core.Ping"))

			Expect(err).NotTo(HaveOccurred())
			Expect(msg.Name).To(Equal("Core.Ping"))
			Expect(msg.JSON).To(BeEmpty())
		})

		It("parses a name with a JSON body", func() {
			msg, err := telnet.ParseGMCPMessage([]byte(`Char.Vitals {"hp":100,"maxhp":120}`))

			Expect(err).NotTo(HaveOccurred())
			Expect(msg.Name).To(Equal("Char.Vitals"))
			Expect(string(msg.JSON)).To(Equal(`{"hp":100,"maxhp":120}`))
		})

		It("accepts deeply nested package names", func() {
			msg, err := telnet.ParseGMCPMessage([]byte("Char.Skills.Get {}"))

			Expect(err).NotTo(HaveOccurred())
			Expect(msg.Name).To(Equal("Char.Skills.Get"))
		})

		It("rejects an invalid JSON body", func() {
			_, err := telnet.ParseGMCPMessage([]byte("Core.Hello {not json"))

			Expect(err).To(MatchError(telnet.ErrMalformedGMCP))
		})

		It("rejects a malformed name", func() {
			for _, bad := range []string{"", ".", "Core..Hello", "Core.He llo}", "Core.H\xffllo"} {
				_, err := telnet.ParseGMCPMessage([]byte(bad))
				Expect(err).To(MatchError(telnet.ErrMalformedGMCP), "name %q", bad)
			}
		})

		It("round-trips through String", func() {
			msg, err := telnet.ParseGMCPMessage([]byte(`Room.Info {"num":1216}`))

			Expect(err).NotTo(HaveOccurred())
			Expect(msg.String()).To(Equal(`Room.Info {"num":1216}`))
		})
	})

	Describe("ParseGMCPModule", func() {
		It("parses a name with a version", func() {
			module, err := telnet.ParseGMCPModule("Char 1")

			Expect(err).NotTo(HaveOccurred())
			Expect(module.Name).To(Equal("Char"))
			Expect(module.Version).To(Equal(1))
			Expect(module.HasVersion()).To(BeTrue())
			Expect(module.Type()).To(Equal(telnet.ModuleChar))
		})

		It("parses a name without a version", func() {
			module, err := telnet.ParseGMCPModule("Room")

			Expect(err).NotTo(HaveOccurred())
			Expect(module.HasVersion()).To(BeFalse())
		})

		It("rejects a non-numeric version", func() {
			_, err := telnet.ParseGMCPModule("Char one")

			Expect(err).To(MatchError(telnet.ErrMalformedGMCP))
		})

		It("maps unknown module families to ModuleUnknown", func() {
			module, err := telnet.ParseGMCPModule("External.Discord 1")

			Expect(err).NotTo(HaveOccurred())
			Expect(module.Type()).To(Equal(telnet.ModuleUnknown))
			Expect(module.Supported()).To(BeFalse())
		})

		It("matches module families by the first name segment", func() {
			module, err := telnet.ParseGMCPModule("Room.Chars 1")

			Expect(err).NotTo(HaveOccurred())
			Expect(module.Type()).To(Equal(telnet.ModuleRoom))
			Expect(module.String()).To(Equal("Room.Chars 1"))
		})
	})
})
