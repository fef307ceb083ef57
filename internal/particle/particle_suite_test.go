package particle

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestParticle(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Particle Suite")
}
