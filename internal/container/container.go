package container

import (
	"fmt"

	"trialsize/adapters/excel"
	"trialsize/app"
	"trialsize/domain/samplesize"
	"trialsize/internal"
	"trialsize/internal/analysis/power"
	"trialsize/internal/config"
	"trialsize/ports"
)

// Container holds all application dependencies. Everything is in-process and
// stateless, so there is nothing to close.
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Engine
	CriticalSource samplesize.CriticalValueSource
	Calculator     *app.CalculatorService

	// Scenarios is nil unless a scenario file is configured
	Scenarios ports.ScenarioReaderPort
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level))
	internal.DefaultLogger = logger

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	if err := c.initCalculator(); err != nil {
		return nil, fmt.Errorf("failed to initialize calculator: %w", err)
	}
	c.initScenarios()

	logger.Debug("[Container] initialized (critical values=%s, scenario file=%q)",
		c.CriticalSource.Name(), cfg.Data.ScenarioFile)
	return c, nil
}

// initCalculator resolves the critical-value source and builds the service
func (c *Container) initCalculator() error {
	source, ok := power.SourceByName(c.Config.Calculation.CriticalValues)
	if !ok {
		return fmt.Errorf("unknown critical value mode %q", c.Config.Calculation.CriticalValues)
	}
	c.CriticalSource = source
	c.Calculator = app.NewCalculatorService(source, c.Logger)
	return nil
}

func (c *Container) initScenarios() {
	if c.Config.Data.ScenarioFile == "" {
		return
	}
	c.Scenarios = ScenarioReaderFor(c.Config.Data.ScenarioFile)
}

// ScenarioReaderFor builds a reader for an xlsx or csv file on the default sheet
func ScenarioReaderFor(path string) ports.ScenarioReaderPort {
	cfg := excel.DefaultExcelConfig()
	cfg.FilePath = path
	cfg.Enabled = true
	return excel.NewScenarioReader(cfg)
}
