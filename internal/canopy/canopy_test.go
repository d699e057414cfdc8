package canopy_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"skyfall/internal/canopy"
)

var _ = Describe("deployment state machine", func() {
	var c *canopy.Canopy

	BeforeEach(func() {
		c = canopy.New()
	})

	It("starts in freefall with a closed canopy", func() {
		Expect(c.Phase()).To(Equal(canopy.Freefall))
		Expect(c.Open()).To(BeFalse())
		Expect(c.CanopyArea()).To(BeZero())
		Expect(c.DragVertical()).To(Equal(canopy.DefaultFreefallDragVertical))
	})

	Describe("Deploy", func() {
		It("transitions to opening above the minimum altitude", func() {
			ok, reason := c.Deploy(1000, 12.5)
			Expect(ok).To(BeTrue())
			Expect(reason).To(Equal(canopy.ReasonNone))
			Expect(c.Phase()).To(Equal(canopy.Opening))
			Expect(c.DeployTime()).To(Equal(12.5))
		})

		It("switches area and drag coefficients to canopy values", func() {
			c.Deploy(1000, 0)
			Expect(c.Area()).To(Equal(canopy.DefaultRoundCanopyArea))
			Expect(c.CanopyArea()).To(Equal(canopy.DefaultRoundCanopyArea))
			Expect(c.DragVertical()).To(Equal(canopy.DefaultCanopyDragVertical))
			Expect(c.DragHorizontal()).To(Equal(canopy.DefaultCanopyDragHorizontal))
		})

		It("rejects deployment at or below 5 m", func() {
			ok, reason := c.Deploy(5, 0)
			Expect(ok).To(BeFalse())
			Expect(reason).To(Equal(canopy.ReasonTooLow))
			Expect(c.Phase()).To(Equal(canopy.Freefall))
		})

		It("rejects a second deploy while opening", func() {
			c.Deploy(1000, 0)
			ok, reason := c.Deploy(900, 1)
			Expect(ok).To(BeFalse())
			Expect(reason).To(Equal(canopy.ReasonAlreadyDeployed))
			Expect(c.Phase()).To(Equal(canopy.Opening))
		})

		It("rejects deploy once fully deployed", func() {
			c.Deploy(1000, 0)
			c.Update(canopy.DefaultOpeningDuration + 1)
			Expect(c.Phase()).To(Equal(canopy.Deployed))

			ok, reason := c.Deploy(500, 10)
			Expect(ok).To(BeFalse())
			Expect(reason).To(Equal(canopy.ReasonAlreadyDeployed))
		})
	})

	Describe("Update", func() {
		It("completes opening automatically after the opening duration", func() {
			c.Deploy(1000, 2.0)

			c.Update(2.0 + canopy.DefaultOpeningDuration/2)
			Expect(c.Phase()).To(Equal(canopy.Opening))

			c.Update(2.0 + canopy.DefaultOpeningDuration)
			Expect(c.Phase()).To(Equal(canopy.Deployed))
		})

		It("does nothing in freefall", func() {
			c.Update(1e6)
			Expect(c.Phase()).To(Equal(canopy.Freefall))
		})
	})

	Describe("Progress", func() {
		It("ramps linearly from 0 to 1 while opening", func() {
			c.Deploy(1000, 0)
			Expect(c.Progress(0)).To(BeZero())
			Expect(c.Progress(canopy.DefaultOpeningDuration / 2)).To(BeNumerically("~", 0.5, 1e-9))
			Expect(c.Progress(canopy.DefaultOpeningDuration * 2)).To(Equal(1.0))
		})

		It("is pinned to the phase endpoints", func() {
			Expect(c.Progress(100)).To(BeZero())
			c.Deploy(1000, 0)
			c.Update(canopy.DefaultOpeningDuration)
			Expect(c.Progress(0)).To(Equal(1.0))
		})
	})

	Describe("Reset", func() {
		It("returns to freefall from any phase", func() {
			c.Deploy(1000, 0)
			c.Update(canopy.DefaultOpeningDuration)
			c.Reset()

			Expect(c.Phase()).To(Equal(canopy.Freefall))
			Expect(c.CanopyArea()).To(BeZero())
			Expect(c.DeployTime()).To(BeZero())
			Expect(c.DragVertical()).To(Equal(canopy.DefaultFreefallDragVertical))
		})

		It("allows a fresh deploy after reset", func() {
			c.Deploy(1000, 0)
			c.Reset()
			ok, _ := c.Deploy(800, 5)
			Expect(ok).To(BeTrue())
		})
	})

	Describe("setters", func() {
		It("rejects a negative canopy area and keeps the prior value", func() {
			Expect(c.SetArea(-1)).To(HaveOccurred())
			c.Deploy(1000, 0)
			Expect(c.CanopyArea()).To(Equal(canopy.DefaultRoundCanopyArea))
		})

		It("accepts new drag coefficients", func() {
			Expect(c.SetDragCoefficients(1.9, 0.5)).To(Succeed())
			c.Deploy(1000, 0)
			Expect(c.DragVertical()).To(Equal(1.9))
			Expect(c.DragHorizontal()).To(Equal(0.5))
		})

		It("rejects negative drag coefficients", func() {
			Expect(c.SetDragCoefficients(-0.1, 0.5)).To(HaveOccurred())
			Expect(c.SetDragCoefficients(0.5, -0.1)).To(HaveOccurred())
		})
	})
})
