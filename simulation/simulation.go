// Package simulation wires the engine, the recorder, the monitor, and the
// ledger together into a runnable whole.
package simulation

import (
	"github.com/tfinlab/tfin/datarecording"
	"github.com/tfinlab/tfin/ledger"
	"github.com/tfinlab/tfin/monitoring"
	"github.com/tfinlab/tfin/sim"
)

// A Simulation provides the services required to define and run a
// bookkeeping simulation.
type Simulation struct {
	id string

	engine       *sim.Engine
	dataRecorder datarecording.DataRecorder
	monitor      *monitoring.Monitor
	chart        *ledger.ChartOfAccounts
}

// ID returns the unique ID of the simulation run.
func (s *Simulation) ID() string {
	return s.id
}

// Engine returns the engine used in the simulation.
func (s *Simulation) Engine() *sim.Engine {
	return s.engine
}

// DataRecorder returns the data recorder used in the simulation.
func (s *Simulation) DataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// Monitor returns the monitor used in the simulation. It is nil when
// monitoring is disabled.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// Chart returns the chart of accounts the simulation posts to.
func (s *Simulation) Chart() *ledger.ChartOfAccounts {
	return s.chart
}

// Terminate flushes and closes the data recorder.
func (s *Simulation) Terminate() {
	s.dataRecorder.Close()
}
