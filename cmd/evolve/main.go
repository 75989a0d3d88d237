package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evolve/internal/bitstring"
	"evolve/internal/config"
	"evolve/internal/ga"
	"evolve/internal/gp"
	"evolve/internal/logging"
	"evolve/internal/problem"
	"evolve/internal/realvec"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults used when empty)")
	problemName := flag.String("problem", "", "override configured problem (onemax|eggholder|symreg)")
	generations := flag.Int("generations", 0, "override configured generation count")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath == "" {
		cfg = config.Default()
	} else {
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *problemName != "" {
		cfg.Problem = *problemName
	}
	if *generations > 0 {
		cfg.GA.Generations = *generations
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Evolve - Problem: %s (%s)\n", cfg.Problem, objective(cfg))
	fmt.Printf("Population: %d, Generations: %d, Elites: %d, Selection: %s\n",
		cfg.GA.Population, cfg.GA.Generations, cfg.GA.Elites, cfg.GA.Selection)
	fmt.Printf("Crossover rate: %.2f, Mutation rate: %.2f, Seed: %d\n",
		cfg.GA.CrossoverRate, cfg.GA.MutationRate, cfg.Seed)
	fmt.Println("---")

	logger, err := logging.NewRunLogger(cfg.Logging.CSVPath, cfg.Logging.JSONPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startTime := time.Now()
	switch cfg.Problem {
	case "onemax":
		err = runOneMax(ctx, cfg, logger)
	case "eggholder":
		err = runEggholder(ctx, cfg, logger)
	case "symreg":
		err = runSymReg(ctx, cfg, logger)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Run failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("---")
	fmt.Printf("Run complete in %v\n", time.Since(startTime))
}

func objective(cfg *config.Config) ga.Objective {
	if cfg.Minimizing() {
		return ga.Minimize
	}
	return ga.Maximize
}

func engineConfig(cfg *config.Config) ga.Config {
	return ga.Config{
		PopulationSize: cfg.GA.Population,
		Generations:    cfg.GA.Generations,
		CrossoverRate:  cfg.GA.CrossoverRate,
		MutationRate:   cfg.GA.MutationRate,
		Elites:         cfg.GA.Elites,
		HallOfFame:     cfg.GA.HallOfFame,
		Objective:      objective(cfg),
		Seed:           cfg.Seed,
		Workers:        cfg.GA.Workers,
	}
}

func selector[G any](cfg *config.Config) ga.Selector[G] {
	if cfg.GA.Selection == "roulette" {
		return ga.NewRoulette[G]()
	}
	return ga.NewTournament[G](cfg.GA.TournamentK)
}

func runOneMax(ctx context.Context, cfg *config.Config, logger *logging.RunLogger) error {
	ops := ga.Operators[bitstring.Genome]{
		Initialize: func(rng *rand.Rand) bitstring.Genome {
			return bitstring.Random(cfg.Bitstring.Length, rng)
		},
		Crossover: bitstring.OnePointCrossover,
		Mutate:    bitstring.FlipMutation(cfg.Bitstring.IndPb),
		Clone:     bitstring.Clone,
		Equal:     bitstring.Equal,
	}

	engine, err := ga.NewEngine(engineConfig(cfg), ops, selector[bitstring.Genome](cfg), problem.OneMax)
	if err != nil {
		return err
	}
	engine.OnGeneration = logger.LogGeneration

	result, runErr := engine.Run(ctx)
	reportRun(result.HallOfFame.Best(), runErr)

	if best := result.HallOfFame.Best(); best != nil {
		genes := make([]int, len(best.Genome))
		for i, g := range best.Genome {
			genes[i] = int(g)
		}
		return logging.SaveChampion(cfg.Logging.ChampionPath, logging.Champion{
			Generation: cfg.GA.Generations,
			Fitness:    best.Fitness,
			Genome:     genes,
		})
	}
	return nil
}

func runEggholder(ctx context.Context, cfg *config.Config, logger *logging.RunLogger) error {
	bounds := realvec.Bounds{Low: cfg.RealVec.Low, High: cfg.RealVec.High}

	crossover := realvec.OnePointCrossover
	if cfg.RealVec.Crossover == "sbx" {
		crossover = realvec.SBXCrossover(cfg.RealVec.EtaCrossover, bounds)
	}

	ops := ga.Operators[realvec.Genome]{
		Initialize: func(rng *rand.Rand) realvec.Genome {
			return realvec.Random(cfg.RealVec.Dim, bounds, rng)
		},
		Crossover: crossover,
		Mutate:    realvec.PolynomialMutation(cfg.RealVec.EtaMutation, bounds, cfg.RealVec.IndPb),
		Clone:     realvec.Clone,
		Equal:     realvec.Equal,
	}

	engine, err := ga.NewEngine(engineConfig(cfg), ops, selector[realvec.Genome](cfg), problem.Eggholder)
	if err != nil {
		return err
	}
	engine.OnGeneration = logger.LogGeneration

	result, runErr := engine.Run(ctx)
	reportRun(result.HallOfFame.Best(), runErr)

	if best := result.HallOfFame.Best(); best != nil {
		return logging.SaveChampion(cfg.Logging.ChampionPath, logging.Champion{
			Generation: cfg.GA.Generations,
			Fitness:    best.Fitness,
			Genome:     []float64(best.Genome),
		})
	}
	return nil
}

func runSymReg(ctx context.Context, cfg *config.Config, logger *logging.RunLogger) error {
	ps := gp.Arithmetic([]string{"x"}, cfg.GP.DivFallback)
	if err := ps.Validate(); err != nil {
		return err
	}

	sym, err := problem.NewSymReg(
		cfg.GP.TargetExpr,
		cfg.GP.SampleFrom, cfg.GP.SampleTo, cfg.GP.SampleCount,
		cfg.GP.FitnessCap, cfg.GP.CacheSize,
	)
	if err != nil {
		return err
	}

	ops := ga.Operators[*gp.Node]{
		Initialize: func(rng *rand.Rand) *gp.Node {
			return gp.HalfAndHalf(ps, cfg.GP.MinDepth, cfg.GP.MaxDepth, rng)
		},
		Crossover: gp.SubtreeCrossover(cfg.GP.HeightLimit),
		Mutate:    gp.UniformMutation(ps, 0, 2, cfg.GP.HeightLimit),
		Clone:     func(n *gp.Node) *gp.Node { return n.Clone() },
		Equal:     func(a, b *gp.Node) bool { return a.Equal(b) },
		Measure:   func(n *gp.Node) float64 { return float64(n.Size()) },
	}

	engine, err := ga.NewEngine(engineConfig(cfg), ops, selector[*gp.Node](cfg), sym.Evaluate)
	if err != nil {
		return err
	}
	engine.OnGeneration = logger.LogGeneration

	result, runErr := engine.Run(ctx)
	reportRun(result.HallOfFame.Best(), runErr)

	if best := result.HallOfFame.Best(); best != nil {
		fmt.Printf("Best expression: %s\n", best.Genome)
		return logging.SaveChampion(cfg.Logging.ChampionPath, logging.Champion{
			Generation: cfg.GA.Generations,
			Fitness:    best.Fitness,
			Genome:     best.Genome.Tokens(),
			Rendered:   best.Genome.String(),
		})
	}
	return nil
}

func reportRun[G any](best *ga.Individual[G], runErr error) {
	if runErr != nil {
		fmt.Printf("Run stopped early: %v\n", runErr)
	}
	if best != nil {
		fmt.Printf("Best fitness: %.4f\n", best.Fitness)
	}
}
