package cmd

import (
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viant/gridpricer"
	"github.com/viant/gridpricer/model"
	"github.com/viant/gridpricer/service/event"
	"github.com/viant/gridpricer/service/strategy"
)

func newPriceCommand(v *viper.Viper) *cobra.Command {
	var (
		fast, semiFast, long int
		events               bool
	)
	priceCmd := &cobra.Command{
		Use:   "price",
		Short: "Price a generated batch of bonds and print the completion time",
		Long: `Generates --fast, --semi-fast and --long bonds, schedules them with the
configured strategy and prints every price followed by the completion time,
the number of bonds priced locally and the number of grid lanes provisioned.`,
		Example: `  gridpricer price --fast 4 --semi-fast 2
  gridpricer price --long 2 --mode realtime --time-unit 100ms --events`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fast < 0 || semiFast < 0 || long < 0 {
				return fmt.Errorf("bond counts must be >= 0")
			}
			config, err := loadConfig(cmd.Context(), v)
			if err != nil {
				return err
			}
			return runPrice(cmd, config, model.NewBatch(fast, semiFast, long), events)
		},
	}

	flags := priceCmd.Flags()
	flags.IntVar(&fast, "fast", 0, "number of fast bonds")
	flags.IntVar(&semiFast, "semi-fast", 0, "number of semi-fast bonds")
	flags.IntVar(&long, "long", 0, "number of long bonds")
	flags.BoolVar(&events, "events", false, "print a line as soon as each price is available")
	flags.String("mode", string(model.ModeAccelerated), "execution mode: accelerated or realtime")
	flags.Duration("time-unit", gridpricer.DefaultConfig().TimeUnit, "wall-clock length of one time unit in realtime mode")
	flags.Int("overhead", gridpricer.DefaultConfig().Overhead, "grid provisioning overhead in time units")
	flags.String("strategy", strategy.GreedyName, "placement strategy")
	flags.Bool("trace", false, "export OpenTelemetry spans")
	flags.String("trace-file", "", "span output file (stdout when empty)")
	_ = v.BindPFlag("mode", flags.Lookup("mode"))
	_ = v.BindPFlag("time_unit", flags.Lookup("time-unit"))
	_ = v.BindPFlag("overhead", flags.Lookup("overhead"))
	_ = v.BindPFlag("strategy", flags.Lookup("strategy"))
	_ = v.BindPFlag("tracing.enabled", flags.Lookup("trace"))
	_ = v.BindPFlag("tracing.output_file", flags.Lookup("trace-file"))
	return priceCmd
}

func runPrice(cmd *cobra.Command, config *gridpricer.Config, batch []*model.Item, events bool) error {
	out := cmd.OutOrStdout()
	options := []gridpricer.Option{gridpricer.WithConfig(config)}
	if events {
		var mu sync.Mutex
		options = append(options, gridpricer.WithPricedListener(func(e *event.Event[model.Priced]) {
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(out, "price available for Item[%v;%v] on %v\n", e.Data.ID, e.Data.Category, e.Context.Lane)
		}))
	}
	srv, err := gridpricer.New(options...)
	if err != nil {
		return err
	}
	run, err := srv.Schedule(cmd.Context(), batch)
	srv.Shutdown()
	if err != nil {
		return err
	}
	printRun(out, run)
	return nil
}

func printRun(out io.Writer, run *gridpricer.Run) {
	for _, result := range run.Results {
		fmt.Fprintf(out, "%v price: %d\n", result.Item, result.Price)
	}
	fmt.Fprintf(out, "strategy: %v\n", run.Strategy)
	fmt.Fprintf(out, "local items: %d\n", run.LocalItems)
	fmt.Fprintf(out, "grid lanes: %d\n", run.GridLanes)
	fmt.Fprintf(out, "completion time: %d\n", run.CompletionTime)
}
