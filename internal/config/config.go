package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure
type Config struct {
	Seed      int64           `yaml:"seed"`
	Problem   string          `yaml:"problem"` // onemax|eggholder|symreg
	GA        GAConfig        `yaml:"ga"`
	Bitstring BitstringConfig `yaml:"bitstring"`
	RealVec   RealVecConfig   `yaml:"realvec"`
	GP        GPConfig        `yaml:"gp"`
	Logging   LogConfig       `yaml:"logging"`
}

// GAConfig defines the evolutionary loop parameters
type GAConfig struct {
	Population    int     `yaml:"population"`
	Generations   int     `yaml:"generations"`
	CrossoverRate float64 `yaml:"crossover_rate"`
	MutationRate  float64 `yaml:"mutation_rate"`
	Elites        int     `yaml:"elites"`
	HallOfFame    int     `yaml:"hall_of_fame"`
	Selection     string  `yaml:"selection"` // tournament|roulette
	TournamentK   int     `yaml:"tournament_k"`
	Workers       int     `yaml:"workers"`
}

// BitstringConfig defines the bit-string genome parameters
type BitstringConfig struct {
	Length int     `yaml:"length"`
	IndPb  float64 `yaml:"indpb"` // per-gene flip probability
}

// RealVecConfig defines the real-vector genome parameters
type RealVecConfig struct {
	Dim          int     `yaml:"dim"`
	Low          float64 `yaml:"low"`
	High         float64 `yaml:"high"`
	Crossover    string  `yaml:"crossover"` // onepoint|sbx
	EtaCrossover float64 `yaml:"eta_crossover"`
	EtaMutation  float64 `yaml:"eta_mutation"`
	IndPb        float64 `yaml:"indpb"` // per-gene mutation probability
}

// GPConfig defines the tree genome and symbolic regression parameters
type GPConfig struct {
	MinDepth    int     `yaml:"min_depth"`
	MaxDepth    int     `yaml:"max_depth"`
	HeightLimit int     `yaml:"height_limit"`
	TargetExpr  string  `yaml:"target_expr"` // expression in x, e.g. "x*x + x"
	SampleFrom  float64 `yaml:"sample_from"`
	SampleTo    float64 `yaml:"sample_to"`
	SampleCount int     `yaml:"sample_count"`
	FitnessCap  float64 `yaml:"fitness_cap"`
	DivFallback float64 `yaml:"div_fallback"`
	CacheSize   int     `yaml:"cache_size"`
}

// LogConfig defines run output parameters
type LogConfig struct {
	EveryGenSummary bool   `yaml:"every_gen_summary"`
	CSVPath         string `yaml:"csv_path"`
	JSONPath        string `yaml:"json_path"`
	ChampionPath    string `yaml:"champion_path"`
}

// Load reads a YAML config file and returns a Config with defaults applied
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

// Default returns a Config with all defaults applied, for programmatic use
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Seed == 0 {
		cfg.Seed = 1337
	}
	if cfg.Problem == "" {
		cfg.Problem = "onemax"
	}
	if cfg.GA.Population == 0 {
		cfg.GA.Population = 300
	}
	if cfg.GA.Generations == 0 {
		cfg.GA.Generations = 40
	}
	if cfg.GA.CrossoverRate == 0 {
		cfg.GA.CrossoverRate = 0.9
	}
	if cfg.GA.MutationRate == 0 {
		cfg.GA.MutationRate = 0.1
	}
	if cfg.GA.Elites == 0 {
		cfg.GA.Elites = 1
	}
	if cfg.GA.HallOfFame == 0 {
		cfg.GA.HallOfFame = 5
	}
	if cfg.GA.Selection == "" {
		cfg.GA.Selection = "tournament"
	}
	if cfg.GA.TournamentK == 0 {
		cfg.GA.TournamentK = 3
	}
	if cfg.Bitstring.Length == 0 {
		cfg.Bitstring.Length = 100
	}
	if cfg.Bitstring.IndPb == 0 {
		cfg.Bitstring.IndPb = 0.05
	}
	if cfg.RealVec.Dim == 0 {
		cfg.RealVec.Dim = 2
	}
	if cfg.RealVec.Low == 0 && cfg.RealVec.High == 0 {
		cfg.RealVec.Low = -512
		cfg.RealVec.High = 512
	}
	if cfg.RealVec.Crossover == "" {
		cfg.RealVec.Crossover = "sbx"
	}
	if cfg.RealVec.EtaCrossover == 0 {
		cfg.RealVec.EtaCrossover = 20
	}
	if cfg.RealVec.EtaMutation == 0 {
		cfg.RealVec.EtaMutation = 20
	}
	if cfg.RealVec.IndPb == 0 {
		cfg.RealVec.IndPb = 0.1
	}
	if cfg.GP.MinDepth == 0 {
		cfg.GP.MinDepth = 1
	}
	if cfg.GP.MaxDepth == 0 {
		cfg.GP.MaxDepth = 3
	}
	if cfg.GP.HeightLimit == 0 {
		cfg.GP.HeightLimit = 17
	}
	if cfg.GP.TargetExpr == "" {
		cfg.GP.TargetExpr = "x*x*x*x + x*x*x + x*x + x"
	}
	if cfg.GP.SampleFrom == 0 && cfg.GP.SampleTo == 0 {
		cfg.GP.SampleFrom = -1
		cfg.GP.SampleTo = 1
	}
	if cfg.GP.SampleCount == 0 {
		cfg.GP.SampleCount = 20
	}
	if cfg.GP.FitnessCap == 0 {
		cfg.GP.FitnessCap = 1000
	}
	if cfg.GP.DivFallback == 0 {
		cfg.GP.DivFallback = 1
	}
	if cfg.GP.CacheSize == 0 {
		cfg.GP.CacheSize = 4096
	}
	if cfg.Logging.CSVPath == "" {
		cfg.Logging.CSVPath = "runs/run.csv"
	}
	if cfg.Logging.JSONPath == "" {
		cfg.Logging.JSONPath = "runs/run.jsonl"
	}
	if cfg.Logging.ChampionPath == "" {
		cfg.Logging.ChampionPath = "runs/champion.json"
	}
}

// Minimizing reports whether the configured problem is a minimization problem
func (c *Config) Minimizing() bool {
	switch c.Problem {
	case "eggholder", "symreg":
		return true
	default:
		return false
	}
}

// Validate checks the configuration before any generation runs.
// All violations here are fatal setup errors.
func (c *Config) Validate() error {
	switch c.Problem {
	case "onemax", "eggholder", "symreg":
	default:
		return fmt.Errorf("unknown problem %q", c.Problem)
	}
	if c.GA.Population <= 0 {
		return fmt.Errorf("population must be positive, got %d", c.GA.Population)
	}
	if c.GA.Generations < 0 {
		return fmt.Errorf("generations must be non-negative, got %d", c.GA.Generations)
	}
	if c.GA.CrossoverRate < 0 || c.GA.CrossoverRate > 1 {
		return fmt.Errorf("crossover_rate must be in [0,1], got %g", c.GA.CrossoverRate)
	}
	if c.GA.MutationRate < 0 || c.GA.MutationRate > 1 {
		return fmt.Errorf("mutation_rate must be in [0,1], got %g", c.GA.MutationRate)
	}
	if c.GA.Elites < 0 || c.GA.Elites > c.GA.Population {
		return fmt.Errorf("elites must be in [0,population], got %d", c.GA.Elites)
	}
	if c.GA.HallOfFame < 0 {
		return fmt.Errorf("hall_of_fame must be non-negative, got %d", c.GA.HallOfFame)
	}
	switch c.GA.Selection {
	case "tournament":
		if c.GA.TournamentK <= 0 {
			return fmt.Errorf("tournament_k must be positive, got %d", c.GA.TournamentK)
		}
	case "roulette":
		// Roulette weights by raw fitness and needs strictly positive values;
		// the minimization problems here produce negative fitness, so reject
		// the pairing up front instead of shifting fitness behind the caller's back.
		if c.Minimizing() {
			return fmt.Errorf("roulette selection requires positive fitness; problem %q minimizes", c.Problem)
		}
	default:
		return fmt.Errorf("unknown selection %q", c.GA.Selection)
	}
	if c.Problem == "onemax" && c.Bitstring.Length <= 0 {
		return fmt.Errorf("bitstring length must be positive, got %d", c.Bitstring.Length)
	}
	if c.Problem == "eggholder" {
		if c.RealVec.Dim <= 0 {
			return fmt.Errorf("realvec dim must be positive, got %d", c.RealVec.Dim)
		}
		if c.RealVec.Low >= c.RealVec.High {
			return fmt.Errorf("realvec bounds invalid: low %g >= high %g", c.RealVec.Low, c.RealVec.High)
		}
		switch c.RealVec.Crossover {
		case "onepoint", "sbx":
		default:
			return fmt.Errorf("unknown realvec crossover %q", c.RealVec.Crossover)
		}
	}
	if c.Problem == "symreg" {
		if c.GP.MinDepth < 0 || c.GP.MaxDepth < c.GP.MinDepth {
			return fmt.Errorf("gp depth bounds invalid: min %d, max %d", c.GP.MinDepth, c.GP.MaxDepth)
		}
		if c.GP.HeightLimit < c.GP.MaxDepth {
			return fmt.Errorf("gp height_limit %d below max_depth %d", c.GP.HeightLimit, c.GP.MaxDepth)
		}
		if c.GP.SampleCount <= 0 {
			return fmt.Errorf("gp sample_count must be positive, got %d", c.GP.SampleCount)
		}
		if c.GP.FitnessCap <= 0 {
			return fmt.Errorf("gp fitness_cap must be positive, got %g", c.GP.FitnessCap)
		}
	}
	return nil
}
