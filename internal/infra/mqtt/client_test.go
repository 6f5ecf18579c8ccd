package mqtt_test

import (
	"vehicle-bridge/internal/infra/mqtt"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("MQTT Client", func() {
	ginkgo.Context("NewSimpleClient", func() {
		ginkgo.When("the broker is unreachable", func() {
			ginkgo.It("should return an error instead of panicking", func() {
				client, err := mqtt.NewSimpleClient(mqtt.SimpleClientOpts{
					Broker:   "tcp://127.0.0.1:1",
					ClientID: "test-client",
				})

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(client).To(gomega.BeNil())
			})
		})
	})

	ginkgo.Context("Message", func() {
		ginkgo.It("should be satisfied by paho messages", func() {
			var _ mqtt.Message = (paho.Message)(nil)
		})
	})
})
