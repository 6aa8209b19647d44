package simulation

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tfinlab/tfin/ledger"
	"github.com/tfinlab/tfin/sim"
)

var _ = Describe("Simulation", func() {
	var (
		s       *Simulation
		dbPath  string
		cleanup func()
	)

	BeforeEach(func() {
		dbPath = GinkgoT().TempDir() + "/sim_test"
		s = MakeBuilder().
			WithoutMonitoring().
			WithOutputFileName(dbPath).
			Build()

		cleanup = func() {
			s.Terminate()
			os.Remove(dbPath + ".sqlite3")
		}
	})

	AfterEach(func() {
		cleanup()
	})

	It("should assign a run ID", func() {
		Expect(s.ID()).ToNot(BeEmpty())
	})

	It("should build a waiting engine with an empty chart", func() {
		Expect(s.Engine().IsState(sim.StateWaiting)).To(BeTrue())
		Expect(s.Chart().Len()).To(Equal(0))
	})

	It("should expose the chart through the dispatch context", func() {
		cash := s.Chart().CreateAssetAccount("Cash", 100)
		sales := s.Chart().CreateIncomeAccount("Sales", 0)

		txn := ledger.NewTransaction(1, "Sale")
		txn.AddDebit(cash, 30)
		txn.AddCredit(sales, 30)
		s.Engine().Schedule(txn)

		Expect(s.Engine().Run()).To(Succeed())
		Expect(s.Engine().IsState(sim.StateFinished)).To(BeTrue())
		Expect(cash.Balance()).To(Equal(130.0))
		Expect(sales.Balance()).To(Equal(30.0))
	})

	It("should refuse a monitor port without monitoring", func() {
		build := func() {
			MakeBuilder().
				WithoutMonitoring().
				WithMonitorPort(8080).
				WithOutputFileName(GinkgoT().TempDir() + "/bad").
				Build()
		}

		Expect(build).To(Panic())
	})
})
