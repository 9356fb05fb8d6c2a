package connections_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"userconnections/src/services/connections"
	"userconnections/src/test_artefacts/stubs"
)

var _ = Describe("FreshnessPolicy", func() {
	Context("ExistencePolicy", func() {
		It("is fresh whenever the subject exists", func() {
			user := stubs.NewUserStub().Get()

			Expect(connections.ExistencePolicy{}.IsFresh(user, true)).To(BeTrue())
			Expect(connections.ExistencePolicy{}.IsFresh(user, false)).To(BeFalse())
		})
	})

	Context("TTLPolicy", func() {
		now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

		policy := connections.TTLPolicy{
			TTL: time.Hour,
			Now: func() time.Time { return now },
		}

		When("the subject was updated within the window", func() {
			It("is fresh", func() {
				user := stubs.NewUserStub().WithUpdatedAt(now.Add(-30 * time.Minute)).Get()

				Expect(policy.IsFresh(user, true)).To(BeTrue())
			})
		})

		When("the subject was updated outside the window", func() {
			It("is stale and must be re-reconciled", func() {
				user := stubs.NewUserStub().WithUpdatedAt(now.Add(-2 * time.Hour)).Get()

				Expect(policy.IsFresh(user, true)).To(BeFalse())
			})
		})

		When("the subject does not exist", func() {
			It("is never fresh", func() {
				user := stubs.NewUserStub().Get()

				Expect(policy.IsFresh(user, false)).To(BeFalse())
			})
		})
	})

	Context("PolicyFromTTL", func() {
		It("keeps the existence behavior for zero or negative TTL", func() {
			Expect(connections.PolicyFromTTL(0)).To(Equal(connections.ExistencePolicy{}))
			Expect(connections.PolicyFromTTL(-1)).To(Equal(connections.ExistencePolicy{}))
		})

		It("builds a TTL policy for a positive TTL", func() {
			policy := connections.PolicyFromTTL(60)

			ttlPolicy, ok := policy.(connections.TTLPolicy)
			Expect(ok).To(BeTrue())
			Expect(ttlPolicy.TTL).To(Equal(time.Minute))
		})
	})
})
