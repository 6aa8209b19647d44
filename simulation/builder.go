package simulation

import (
	"github.com/rs/xid"

	"github.com/tfinlab/tfin/datarecording"
	"github.com/tfinlab/tfin/ledger"
	"github.com/tfinlab/tfin/monitoring"
	"github.com/tfinlab/tfin/sim"
)

// Builder can be used to build a simulation.
type Builder struct {
	engineName     string
	monitorOn      bool
	monitorPort    int
	openDashboard  bool
	outputFileName string
}

// MakeBuilder creates a new builder with the default configuration.
func MakeBuilder() Builder {
	return Builder{
		engineName: "tfin",
		monitorOn:  true,
	}
}

// WithEngineName sets the name of the engine.
func (b Builder) WithEngineName(name string) Builder {
	b.engineName = name
	return b
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithDashboardOpening makes the monitor open its URL in the default
// browser once the server starts.
func (b Builder) WithDashboardOpening() Builder {
	b.openDashboard = true
	return b
}

// WithOutputFileName sets a custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}
	if !b.monitorOn && b.openDashboard {
		panic("dashboard cannot be opened when monitoring is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id: xid.New().String(),
	}

	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "tfin_run_" + s.id
	}
	s.dataRecorder = datarecording.NewDataRecorder(outputPath)

	s.engine = sim.NewEngine(b.engineName)
	s.engine.AcceptHook(datarecording.NewDispatchLogger(s.dataRecorder))

	s.chart = ledger.NewChartOfAccounts()
	s.engine.SetContext(sim.Context{"chart": s.chart})

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		if b.openDashboard {
			s.monitor.WithDashboardOpening()
		}
		s.monitor.RegisterEngine(s.engine)
		s.monitor.RegisterChart(s.chart)
		s.monitor.StartServer()
	}

	return s
}
