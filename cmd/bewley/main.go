// Command bewley solves heterogeneous-agent incomplete-markets economies
// from the command line: stationary equilibria for the pure-exchange and
// production variants, and borrowing-limit transition paths.
package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/bewley/assetgrid"
	"github.com/katalvlaran/bewley/equilibrium"
	"github.com/katalvlaran/bewley/income"
	"github.com/katalvlaran/bewley/internal/config"
	"github.com/katalvlaran/bewley/progress"
	"github.com/katalvlaran/bewley/transition"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

var (
	log = logrus.New()
	cfg *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bewley",
	Short: "Heterogeneous-agent incomplete-markets equilibrium solver",
	Long: `bewley computes general-equilibrium fixed points of Aiyagari/Huggett
economies: an AR(1) income process discretized by Tauchen-Hussey quadrature,
a household savings problem solved by value-function iteration, the
stationary cross-sectional distribution, and a bisection search for the
market-clearing interest rate.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("config")
		verbose, _ := cmd.Flags().GetBool("verbose")

		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.InfoLevel)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}

		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (YAML)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every solver iteration")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(transitionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(*cobra.Command, []string) {
		fmt.Printf("bewley %s (%s)\n", version, commit)
	},
}

// --- solve ---

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve the stationary equilibrium of the configured economy",
	RunE: func(cmd *cobra.Command, _ []string) error {
		proc, grid, err := buildEconomy()
		if err != nil {
			return err
		}

		var rule equilibrium.SupplyRule
		switch cfg.Model {
		case config.ModelAiyagari:
			rule = equilibrium.CobbDouglas{
				TFP:   cfg.Technology.TFP,
				Alpha: cfg.Technology.Alpha,
				Delta: cfg.Technology.Delta,
				Labor: cfg.Technology.Labor,
			}
		default:
			rule = equilibrium.FixedBondSupply{Bonds: cfg.Technology.BondSup}
		}

		opts := []equilibrium.Option{
			equilibrium.WithPreferences(cfg.Preferences.Beta, cfg.Preferences.Gamma),
			equilibrium.WithClearingTolerance(cfg.Solver.TolClearing, cfg.Solver.MaxIterClearing),
			equilibrium.WithValueTolerance(cfg.Solver.TolValue, cfg.Solver.MaxIterValue),
			equilibrium.WithDistributionTolerance(cfg.Solver.TolDistribution, cfg.Solver.MaxIterDist),
			equilibrium.WithProgress(newLogSink()),
		}
		if high := cfg.Solver.RateHigh; high != 0 {
			opts = append(opts, equilibrium.WithBracket(cfg.Solver.RateLow, high))
		} else if cfg.Solver.RateLow != -1 {
			opts = append(opts, equilibrium.WithBracket(cfg.Solver.RateLow, 1/cfg.Preferences.Beta-1-1e-4))
		}

		res, err := equilibrium.Solve(cmd.Context(), proc, grid, rule, opts...)
		if err != nil {
			return err
		}
		if !res.Converged {
			log.WithFields(logrus.Fields{
				"iterations": res.Iterations,
				"rate":       res.Rate,
				"residual":   res.Residual,
			}).Warn("market did not clear within the step cap")
		}

		fmt.Printf("model        %s\n", cfg.Model)
		fmt.Printf("converged    %v\n", res.Converged)
		fmt.Printf("rate         %.8f\n", res.Rate)
		fmt.Printf("aggregate    %.8f\n", res.Aggregate)
		fmt.Printf("residual     %.3e\n", res.Residual)
		fmt.Printf("iterations   %d\n", res.Iterations)

		return nil
	},
}

// --- transition ---

var transitionCmd = &cobra.Command{
	Use:   "transition [limit...]",
	Short: "Solve a borrowing-limit transition path (pure exchange)",
	Long: `transition takes a sequence of per-period borrowing limits and an
anchor rate for the terminal stationary economy, and searches for the
interest-rate path that clears the bond market in every period.

Example: bewley transition --rate 0.01 -- -3 -2 -1 -1`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		proc, _, err := buildEconomy()
		if err != nil {
			return err
		}

		limits := make([]float64, len(args))
		for i, a := range args {
			v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
			if err != nil {
				return fmt.Errorf("limit %q: %w", a, err)
			}
			limits[i] = v
		}
		rate, _ := cmd.Flags().GetFloat64("rate")
		relax, _ := cmd.Flags().GetFloat64("relax")

		res, err := transition.Solve(cmd.Context(), proc, limits, rate,
			transition.WithGrid(cfg.Assets.Max, cfg.Assets.Points, cfg.Assets.LogSpaced),
			transition.WithPreferences(cfg.Preferences.Beta, cfg.Preferences.Gamma),
			transition.WithBonds(cfg.Technology.BondSup),
			transition.WithPathUpdate(relax, cfg.Solver.RateLow, 1/cfg.Preferences.Beta-1-1e-4,
				cfg.Solver.TolClearing, cfg.Solver.MaxIterClearing),
			transition.WithTerminalTolerance(cfg.Solver.TolValue, cfg.Solver.MaxIterValue),
			transition.WithProgress(newLogSink()),
		)
		if err != nil {
			return err
		}

		fmt.Printf("converged    %v\n", res.Converged)
		fmt.Printf("residual     %.3e\n", res.Residual)
		fmt.Printf("iterations   %d\n", res.Iterations)
		for t, r := range res.Rates {
			fmt.Printf("t=%-3d rate %.8f  excess %+.3e\n", t, r, res.Excess[t])
		}

		return nil
	},
}

func init() {
	transitionCmd.Flags().Float64("rate", 0.0, "terminal stationary interest rate")
	transitionCmd.Flags().Float64("relax", 0.1, "damping weight of the path update")
}

// buildEconomy constructs the income process and asset grid from the
// loaded configuration.
func buildEconomy() (*income.Process, assetgrid.Grid, error) {
	proc, err := income.Discretize(
		cfg.Income.States,
		cfg.Income.Persistence,
		cfg.Income.ShockStd,
		cfg.Income.Mean,
	)
	if err != nil {
		return nil, assetgrid.Grid{}, err
	}
	grid, err := assetgrid.Build(cfg.Assets.BorrowingLimit, cfg.Assets.Max, cfg.Assets.Points, cfg.Assets.LogSpaced)
	if err != nil {
		return nil, assetgrid.Grid{}, err
	}

	return proc, grid, nil
}

// newLogSink adapts logrus to the progress.Sink interface: outer stages at
// info, inner sweeps at debug.
func newLogSink() progress.Sink {
	return progress.SinkFunc(func(e progress.Event) {
		fields := logrus.Fields{
			"stage":     e.Stage,
			"iteration": e.Iteration,
			"residual":  e.Residual,
		}
		if e.Stage == progress.StageBisection || e.Stage == progress.StagePath {
			fields["rate"] = e.Rate
			if !math.IsNaN(e.Residual) {
				log.WithFields(fields).Info("outer step")
			}

			return
		}
		log.WithFields(fields).Debug("sweep")
	})
}
