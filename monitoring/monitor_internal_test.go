package monitoring

import (
	"encoding/json"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tfinlab/tfin/ledger"
	"github.com/tfinlab/tfin/sim"
)

var _ = Describe("Monitor", func() {
	var (
		m      *Monitor
		engine *sim.Engine
		chart  *ledger.ChartOfAccounts
	)

	BeforeEach(func() {
		engine = sim.NewEngine("Test")
		chart = ledger.NewChartOfAccounts()

		m = NewMonitor()
		m.RegisterEngine(engine)
		m.RegisterChart(chart)
	})

	It("should report the engine status", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/status", nil)

		m.status(w, r)

		rsp := statusRsp{}
		Expect(json.Unmarshal(w.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.State).To(Equal("WAITING"))
		Expect(rsp.Message).To(ContainSubstring("Initialized"))
	})

	It("should report the current time", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/now", nil)

		m.now(w, r)

		Expect(w.Body.String()).To(Equal("{\"now\":0}"))
	})

	It("should report the number of pending events", func() {
		engine.Schedule(ledger.NewTransaction(1, "Txn"))

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/queue", nil)

		m.queue(w, r)

		Expect(w.Body.String()).To(Equal("{\"pending\":1}"))
	})

	It("should report account balances", func() {
		chart.CreateAssetAccount("Cash", 120)

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/accounts", nil)

		m.accounts(w, r)

		rsp := []accountRsp{}
		Expect(json.Unmarshal(w.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp).To(HaveLen(1))
		Expect(rsp[0].Name).To(Equal("Cash"))
		Expect(rsp[0].Type).To(Equal("ASSET"))
		Expect(rsp[0].Balance).To(Equal(120.0))
	})

	It("should reject privileged port numbers", func() {
		m.WithPortNumber(80)

		Expect(m.portNumber).To(Equal(0))
	})
})
