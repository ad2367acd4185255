package main

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestFrameFlagsAreIndependent(t *testing.T) {
	g := NewWithT(t)

	root := newRootCmd()
	g.Expect(runFrames).To(Equal(600))
	g.Expect(benchFrames).To(Equal(200))

	run, _, err := root.Find([]string{"run"})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(run.Flags().Lookup("frames").DefValue).To(Equal("600"))

	bench, _, err := root.Find([]string{"bench"})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(bench.Flags().Set("frames", "50")).To(Succeed())
	g.Expect(benchFrames).To(Equal(50))
	g.Expect(runFrames).To(Equal(600))
}
