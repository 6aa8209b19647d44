// Package monitoring turns a simulation into a small web server so that the
// engine state and ledger balances can be observed while a run is in
// progress. The monitor only reads; it never mutates the simulation.
package monitoring

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"

	"github.com/tfinlab/tfin/ledger"
	"github.com/tfinlab/tfin/sim"
)

// Monitor exposes the simulation over HTTP.
type Monitor struct {
	engine     *sim.Engine
	chart      *ledger.ChartOfAccounts
	portNumber int
	openDash   bool
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor. Ports below 1000 are
// rejected and replaced with a random port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithDashboardOpening makes StartServer open the monitor URL in the
// default browser.
func (m *Monitor) WithDashboardOpening() *Monitor {
	m.openDash = true
	return m
}

// RegisterEngine registers the engine that is used in the simulation.
func (m *Monitor) RegisterEngine(e *sim.Engine) {
	m.engine = e
}

// RegisterChart registers the chart of accounts to be monitored.
func (m *Monitor) RegisterChart(c *ledger.ChartOfAccounts) {
	m.chart = c
}

// StartServer starts the monitor as a web server.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()
	r.HandleFunc("/api/status", m.status)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/queue", m.queue)
	r.HandleFunc("/api/accounts", m.accounts)
	r.HandleFunc("/api/resource", m.listResources)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	go func() {
		err := http.Serve(listener, r)
		dieOnErr(err)
	}()

	if m.openDash {
		_ = browser.OpenURL(url + "/api/status")
	}
}

type statusRsp struct {
	State   string `json:"state"`
	Message string `json:"message"`
}

func (m *Monitor) status(w http.ResponseWriter, _ *http.Request) {
	s := m.engine.Status()
	writeJSON(w, statusRsp{State: s.State.String(), Message: s.Message})
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"now\":%d}", m.engine.CurrentTime())
}

func (m *Monitor) queue(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"pending\":%d}", m.engine.QueueLen())
}

type accountRsp struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Balance float64 `json:"balance"`
}

func (m *Monitor) accounts(w http.ResponseWriter, _ *http.Request) {
	rsp := []accountRsp{}

	if m.chart != nil {
		for _, accountType := range ledger.AccountTypes {
			for _, account := range m.chart.ByType(accountType) {
				rsp = append(rsp, accountRsp{
					Name:    account.Name(),
					Type:    account.Type().String(),
					Balance: account.Balance(),
				})
			}
		}
	}

	writeJSON(w, rsp)
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	p, err := process.NewProcess(int32(os.Getpid()))
	dieOnErr(err)

	cpuPercent, err := p.CPUPercent()
	dieOnErr(err)

	memInfo, err := p.MemoryInfo()
	dieOnErr(err)

	fmt.Fprintf(w, "{\"cpu_percent\":%f,\"rss\":%d}",
		cpuPercent, memInfo.RSS)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		panic(err)
	}
}
