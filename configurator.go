package cycler

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/iwtcode/cyclerAdapter/drivers"
	"github.com/iwtcode/cyclerAdapter/drivers/maccor"
	"github.com/iwtcode/cyclerAdapter/models"
	"github.com/iwtcode/cyclerAdapter/plan"
	"github.com/sirupsen/logrus"
)

// Configurator является основной точкой входа: документ плана -> дерево плана ->
// конфигурация выбранного драйвера.
type Configurator struct {
	plan       *models.ExperimentPlan
	driverName string
	overrides  drivers.Overrides
	registry   *drivers.Registry
	logger     *logrus.Entry
}

type options struct {
	logger   *logrus.Logger
	registry *drivers.Registry
}

// Option настраивает Configurator.
type Option func(*options)

// WithLogger задает логгер; по умолчанию журнал отключен.
func WithLogger(l *logrus.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRegistry заменяет набор драйверов по умолчанию.
func WithRegistry(r *drivers.Registry) Option {
	return func(o *options) { o.registry = r }
}

// DefaultRegistry возвращает реестр со всеми встроенными драйверами.
func DefaultRegistry(logger logrus.FieldLogger) *drivers.Registry {
	return drivers.NewRegistry(maccor.NewMapper(logger))
}

// New сразу десериализует документ, поэтому ошибка в плане возвращается
// до выбора драйвера.
func New(doc map[string]interface{}, driverName string, overrides drivers.Overrides, opts ...Option) (*Configurator, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logrus.New()
		o.logger.SetOutput(io.Discard)
	}

	entry := o.logger.WithFields(logrus.Fields{
		"load_id": uuid.NewString(),
		"driver":  driverName,
	})
	if o.registry == nil {
		o.registry = DefaultRegistry(entry)
	}

	p, err := plan.NewDeserializer(entry).Deserialize(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize experiment plan: %w", err)
	}

	summary := plan.Summarize(p)
	entry.WithFields(logrus.Fields{
		"instructions": summary.Instructions,
		"sequences":    summary.Sequences,
		"max_depth":    summary.MaxDepth,
	}).Debug("План эксперимента загружен")

	return &Configurator{
		plan:       p,
		driverName: driverName,
		overrides:  overrides,
		registry:   o.registry,
		logger:     entry,
	}, nil
}

// Plan возвращает десериализованный план. Дерево нельзя изменять.
func (c *Configurator) Plan() *models.ExperimentPlan {
	return c.plan
}

func (c *Configurator) DriverName() string {
	return c.driverName
}

// Summary возвращает сводку по дереву плана.
func (c *Configurator) Summary() plan.Summary {
	return plan.Summarize(c.plan)
}

// GetDriverConfig выбирает маппер по имени драйвера и строит его конфигурацию.
func (c *Configurator) GetDriverConfig() (drivers.DriverConfig, error) {
	mapper, err := c.registry.Lookup(c.driverName)
	if err != nil {
		return nil, err
	}

	cfg, err := mapper.Map(c.plan, c.overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to map plan to %s config: %w", c.driverName, err)
	}

	c.logger.WithField("overrides", len(c.overrides)).Debug("Конфигурация драйвера построена")
	return cfg, nil
}

// RunTest строит конфигурацию и передает ее внешнему драйверу оборудования.
func (c *Configurator) RunTest(conn drivers.Connector) error {
	cfg, err := c.GetDriverConfig()
	if err != nil {
		return err
	}
	if err := drivers.Run(conn, cfg); err != nil {
		return err
	}
	c.logger.WithField("procedure", cfg.TestProcedure()).Info("Испытание запущено")
	return nil
}
