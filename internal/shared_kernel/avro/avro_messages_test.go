package avro_test

import (
	"shipops-server/internal/operations/domain"
	"shipops-server/internal/shared_kernel/avro"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("message conversions", func() {
	Context("ToAvroStep", func() {
		It("carries the envelope as json", func() {
			shipment, err := domain.NewShipmentBuilder().WithReference("SHP-9").Build()
			Expect(err).ToNot(HaveOccurred())

			step, err := domain.NewStepBuilder().
				WithShipment(shipment).
				WithName("Loading").
				Build()
			Expect(err).ToNot(HaveOccurred())
			step.Values.Values = map[string]any{"vessel": "MV Aurora"}

			msg := avro.ToAvroStep(step)
			Expect(msg.ID).To(Equal(string(step.ID)))
			Expect(msg.ShipmentID).To(Equal(string(shipment.ID)))
			Expect(msg.Status).To(Equal("pending"))
			Expect(msg.ValuesJSON).To(MatchJSON(`{"vessel":"MV Aurora"}`))
		})
	})

	Context("ToAvroShipment", func() {
		It("carries global values as json", func() {
			shipment, err := domain.NewShipmentBuilder().WithReference("SHP-9").Build()
			Expect(err).ToNot(HaveOccurred())
			shipment.GlobalValues["eta"] = "2026-03-01"

			msg := avro.ToAvroShipment(shipment)
			Expect(msg.Reference).To(Equal("SHP-9"))
			Expect(msg.GlobalValuesJSON).To(MatchJSON(`{"eta":"2026-03-01"}`))
		})
	})
})
