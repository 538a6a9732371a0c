package main

import (
	"context"
	"delivery-route-service/internal/config"
	"delivery-route-service/internal/services"
	"delivery-route-service/internal/simulation"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	apiURL   string
	orderIDs string
	tick     time.Duration
	step     float64
)

var rootCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Animates the driver along the current delivery route",
	Long:  `simulate fetches the optimized route from the API and steps through it on a timer, showing which stop the driver has reached. It only reads from the API.`,
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&apiURL, "api", "", "Route API base URL (default http://localhost:$PORT)")
	rootCmd.Flags().StringVar(&orderIDs, "order-ids", "", "Comma-separated explicit order ids; empty routes every deliverable order")
	rootCmd.Flags().DurationVar(&tick, "tick", 0, "Time between progress steps (default $SIM_TICK or 500ms)")
	rootCmd.Flags().Float64Var(&step, "step", simulation.DefaultStep, "Percent added per tick")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if apiURL == "" {
		apiURL = "http://localhost:" + config.Get("PORT", "8080")
	}
	if tick == 0 {
		d, err := time.ParseDuration(config.Get("SIM_TICK", "500ms"))
		if err != nil {
			return fmt.Errorf("SIM_TICK: %w", err)
		}
		tick = d
	}

	route, err := fetchRoute(ctx, &http.Client{Timeout: 15 * time.Second}, apiURL, services.ParseOrderIDs(orderIDs))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Route from (%.4f, %.4f): %d stops, %s km, ~%d min\n",
		route.Hub.Latitude, route.Hub.Longitude, route.Stats.StopCount, route.Stats.TotalDistance, route.Stats.EstimatedTime)

	if len(route.Route) == 0 {
		fmt.Fprintln(out, "Nothing to deliver.")
		return nil
	}

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("Leaving hub"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)

	driver := &simulation.Driver{Interval: tick, Step: step}
	defer driver.Stop()

	n := len(route.Route)
	for p := range driver.Start(ctx, stopCoordinates(route)) {
		stop := route.Route[p.StopIndex]
		bar.Describe(fmt.Sprintf("Stop %d/%d #%d %s (%d done)",
			p.StopIndex+1, n, stop.OrderID, stop.Customer.Name, simulation.CompletedStops(p.Percent, n)))
		_ = bar.Set(int(p.Percent))

		if p.Done {
			_ = bar.Finish()
			fmt.Fprintf(out, "All %d stops delivered.\n", n)
		}
	}

	return ctx.Err()
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
