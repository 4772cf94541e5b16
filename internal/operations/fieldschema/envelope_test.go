package fieldschema_test

import (
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"shipops-server/internal/operations/fieldschema"
)

var _ = Describe("Envelope", func() {
	Context("parsing stored values", func() {
		It("strips the reserved freeze key from the value tree", func() {
			raw := []byte(`{
				"eta": "2026-09-01",
				"__countdown_freeze__": {"free_days": "2026-08-20T10:00:00Z"}
			}`)

			env := fieldschema.ParseEnvelope(raw)

			Expect(env.Values).To(HaveKey("eta"))
			Expect(env.Values).NotTo(HaveKey("__countdown_freeze__"))
			Expect(env.Freeze).To(HaveKey("free_days"))
			Expect(env.Freeze["free_days"]).To(Equal(time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)))
		})

		It("ignores malformed freeze entries", func() {
			raw := []byte(`{"__countdown_freeze__": {"a": "not a time", "b": 42}}`)

			env := fieldschema.ParseEnvelope(raw)

			Expect(env.Freeze).To(BeEmpty())
		})

		It("degrades malformed documents to an empty envelope", func() {
			env := fieldschema.ParseEnvelope([]byte(`[1,2,3]`))

			Expect(env.Values).To(BeEmpty())
			Expect(env.Freeze).To(BeEmpty())
		})

		It("degrades absent documents to an empty envelope", func() {
			env := fieldschema.ParseEnvelope(nil)

			Expect(env.Values).To(BeEmpty())
			Expect(env.Freeze).To(BeEmpty())
		})
	})

	Context("round-tripping", func() {
		It("re-embeds the freeze map under the reserved key", func() {
			env := fieldschema.Envelope{
				Values: map[string]any{"eta": "2026-09-01"},
				Freeze: fieldschema.FreezeMap{
					"free_days": time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
				},
			}

			raw, err := env.Marshal()
			Expect(err).NotTo(HaveOccurred())

			var decoded map[string]any
			Expect(json.Unmarshal(raw, &decoded)).To(Succeed())
			Expect(decoded).To(HaveKey("__countdown_freeze__"))

			again := fieldschema.ParseEnvelope(raw)
			Expect(again.Values).To(Equal(env.Values))
			Expect(again.Freeze.Equal(env.Freeze)).To(BeTrue())
		})

		It("omits the reserved key when no field is frozen", func() {
			env := fieldschema.Envelope{Values: map[string]any{"eta": "2026-09-01"}}

			raw, err := env.Marshal()
			Expect(err).NotTo(HaveOccurred())

			var decoded map[string]any
			Expect(json.Unmarshal(raw, &decoded)).To(Succeed())
			Expect(decoded).NotTo(HaveKey("__countdown_freeze__"))
		})
	})
})
