package common

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCommon(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Common Suite")
}

var _ = Describe("LoadConfig", func() {
	It("falls back to the default policy when no environment is set", func() {
		cfg := LoadConfig()
		Expect(cfg.Policy).To(Equal(DefaultPolicy()))
		Expect(cfg.Batch.Workers).To(Equal(4))
		Expect(cfg.Validate()).To(Succeed())
	})

	It("overrides policy knobs from the environment", func() {
		GinkgoT().Setenv("TRUST_TOLERANCE_CENTS", "2")
		GinkgoT().Setenv("TRUST_AUTO_APPROVE_THRESHOLD", "0.99")

		cfg := LoadConfig()
		Expect(cfg.Policy.ToleranceCents).To(Equal(int64(2)))
		Expect(cfg.Policy.AutoApproveThreshold).To(Equal(0.99))
	})

	It("ignores unparseable environment values", func() {
		GinkgoT().Setenv("TRUST_VALIDATION_WEIGHT", "lots")
		Expect(LoadConfig().Policy.ValidationWeight).To(Equal(0.70))
	})
})

var _ = Describe("Config.Validate", func() {
	var cfg *Config

	BeforeEach(func() {
		cfg = &Config{Policy: DefaultPolicy(), Batch: BatchConfig{Workers: 4}}
	})

	It("rejects weights that do not sum to one", func() {
		cfg.Policy.ExtractionWeight = 0.5
		Expect(cfg.Validate()).To(MatchError(ErrInvalidInput))
	})

	It("rejects an auto-approve threshold below the verify threshold", func() {
		cfg.Policy.AutoApproveThreshold = 0.80
		Expect(cfg.Validate()).To(MatchError(ErrInvalidInput))
	})

	It("rejects a non-positive worker count", func() {
		cfg.Batch.Workers = 0
		Expect(cfg.Validate()).To(MatchError(ErrInvalidInput))
	})
})
