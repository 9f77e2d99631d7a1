package recommend

// Wealth and income proximity matter more for product fit than age.
const (
	WeightAge    = 0.2
	WeightAssets = 0.4
	WeightIncome = 0.4
)

const (
	DefaultNeighbors  = 50
	DefaultTopPerKind = 5
	DefaultTopTotal   = 10
)

type Weights struct {
	Age    float64
	Assets float64
	Income float64
}

func DefaultWeights() Weights {
	return Weights{
		Age:    WeightAge,
		Assets: WeightAssets,
		Income: WeightIncome,
	}
}

type Config struct {
	Neighbors  int
	TopPerKind int
	TopTotal   int
	Weights    Weights
}

func DefaultConfig() Config {
	return Config{
		Neighbors:  DefaultNeighbors,
		TopPerKind: DefaultTopPerKind,
		TopTotal:   DefaultTopTotal,
		Weights:    DefaultWeights(),
	}
}

// withDefaults fills zero-valued limits so a partially populated Config
// still behaves.
func (c Config) withDefaults() Config {
	if c.Neighbors <= 0 {
		c.Neighbors = DefaultNeighbors
	}
	if c.TopPerKind <= 0 {
		c.TopPerKind = DefaultTopPerKind
	}
	if c.TopTotal <= 0 {
		c.TopTotal = DefaultTopTotal
	}
	if c.Weights == (Weights{}) {
		c.Weights = DefaultWeights()
	}
	return c
}
