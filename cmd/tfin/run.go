package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/tfinlab/tfin/ledger"
	"github.com/tfinlab/tfin/sim"
	"github.com/tfinlab/tfin/simulation"
)

var (
	stopAtFlag  int64
	monthsFlag  int
	monitorFlag bool
	portFlag    int
	outputFlag  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a demo bookkeeping simulation",
	Long: `Run a demo bookkeeping simulation: a small business earning ` +
		`monthly sales and paying monthly rent. Each month-close event ` +
		`posts its transactions and schedules the next month.`,
	Run: func(cmd *cobra.Command, args []string) {
		runSimulation()
	},
}

func init() {
	runCmd.Flags().Int64Var(&stopAtFlag, "stop-at", 0,
		"logical time to stop at (0 runs to exhaustion)")
	runCmd.Flags().IntVar(&monthsFlag, "months", 12,
		"number of months to simulate")
	runCmd.Flags().BoolVar(&monitorFlag, "monitor", false,
		"start the monitoring server")
	runCmd.Flags().IntVar(&portFlag, "port", 0,
		"monitoring server port (0 picks a random port)")
	runCmd.Flags().StringVar(&outputFlag, "output", "",
		"output database file name, without extension")

	rootCmd.AddCommand(runCmd)
}

// monthClose posts the transactions of one month and schedules the close of
// the next month.
type monthClose struct {
	*sim.EventBase

	month     int
	lastMonth int
}

// daysPerMonth keeps the demo clock simple.
const daysPerMonth = 30

func (e monthClose) Dispatch(ctx sim.Context) ([]sim.Event, error) {
	chart, ok := ctx["chart"].(*ledger.ChartOfAccounts)
	if !ok {
		return nil, sim.NewEventError(e, "no chart of accounts in context")
	}

	cash := chart.ByNameAndType("Cash", ledger.AccountTypeAsset)
	sales := chart.ByNameAndType("Sales", ledger.AccountTypeIncome)
	rent := chart.ByNameAndType("Rent", ledger.AccountTypeExpense)

	sale := ledger.NewTransaction(
		e.Time(), fmt.Sprintf("Sales month %d", e.month))
	sale.AddDebit(cash, 100)
	sale.AddCredit(sales, 100)

	rentBill := ledger.NewTransaction(
		e.Time(), fmt.Sprintf("Rent month %d", e.month))
	rentBill.AddDebit(rent, 60)
	rentBill.AddCredit(cash, 60)

	followOns := []sim.Event{sale, rentBill}

	if e.month < e.lastMonth {
		followOns = append(followOns, monthClose{
			EventBase: sim.NewEventBase(
				e.Time()+daysPerMonth,
				fmt.Sprintf("Month %d close", e.month+1)),
			month:     e.month + 1,
			lastMonth: e.lastMonth,
		})
	}

	return followOns, nil
}

func runSimulation() {
	builder := simulation.MakeBuilder().
		WithEngineName("tfin-demo").
		WithOutputFileName(outputFlag)

	if monitorFlag {
		port := portFlag
		if port == 0 {
			port = monitorPortFromEnv()
		}
		if port > 0 {
			builder = builder.WithMonitorPort(port)
		}
	} else {
		builder = builder.WithoutMonitoring()
	}

	s := builder.Build()
	defer s.Terminate()

	chart := s.Chart()
	chart.CreateAssetAccount("Cash", 1000)
	chart.CreateEquityAccount("Capital", 1000)
	chart.CreateIncomeAccount("Sales", 0)
	chart.CreateExpenseAccount("Rent", 0)

	engine := s.Engine()
	engine.Schedule(monthClose{
		EventBase: sim.NewEventBase(daysPerMonth, "Month 1 close"),
		month:     1,
		lastMonth: monthsFlag,
	})

	var err error
	if stopAtFlag > 0 {
		err = engine.RunUntil(sim.VTime(stopAtFlag))
	} else {
		err = engine.Run()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "simulation failed: %s\n", err)
		atexit.Exit(1)
	}

	status := engine.Status()
	fmt.Printf("%s at t %d: %s\n",
		status.State, engine.CurrentTime(), status.Message)

	for _, accountType := range ledger.AccountTypes {
		for _, account := range chart.ByType(accountType) {
			fmt.Println(account)
		}
	}

	atexit.Exit(0)
}

func monitorPortFromEnv() int {
	v := os.Getenv("TFIN_MONITOR_PORT")
	if v == "" {
		return 0
	}

	port, err := strconv.Atoi(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid TFIN_MONITOR_PORT %q\n", v)
		return 0
	}

	return port
}
