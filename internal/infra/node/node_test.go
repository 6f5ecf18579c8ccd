package node_test

import (
	"net"
	"strings"
	"vehicle-bridge/internal/infra/node"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Node", func() {
	ginkgo.It("describes the running process", func() {
		info := node.GetNodeInfo()

		gomega.Expect(info.ID).To(gomega.HaveLen(36))
		gomega.Expect(info.Hostname).NotTo(gomega.BeEmpty())
		gomega.Expect(net.ParseIP(info.IPAddress)).NotTo(gomega.BeNil())
		gomega.Expect(info.Version).To(gomega.Equal(node.Version))
		gomega.Expect(info.CommitHash).To(gomega.Equal(node.CommitHash))
		gomega.Expect(info.StartedAt).NotTo(gomega.BeZero())
	})

	ginkgo.It("keeps the same identity across calls", func() {
		gomega.Expect(node.GetNodeInfo()).To(gomega.Equal(node.GetNodeInfo()))
	})

	ginkgo.It("derives client ids from the node id", func() {
		info := node.GetNodeInfo()
		clientID := info.ClientID("vehicle-bridge")

		gomega.Expect(clientID).To(gomega.HavePrefix("vehicle-bridge-"))
		gomega.Expect(strings.TrimPrefix(clientID, "vehicle-bridge-")).To(gomega.Equal(info.ID[:8]))
	})

	ginkgo.It("reports a growing uptime", func() {
		gomega.Expect(node.GetNodeInfo().Uptime()).To(gomega.BeNumerically(">", 0))
	})
})
