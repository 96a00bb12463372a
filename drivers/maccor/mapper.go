package maccor

import (
	"io"

	"github.com/iwtcode/cyclerAdapter/drivers"
	"github.com/iwtcode/cyclerAdapter/internal/values"
	"github.com/iwtcode/cyclerAdapter/models"
	cerrors "github.com/iwtcode/cyclerAdapter/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DriverName - имя, под которым маппер регистрируется в drivers.Registry.
const DriverName = "maccor"

// globalProjection переносит одно глобальное поле плана в поле конфигурации.
type globalProjection struct {
	source string
	dest   string
	apply  func(g models.ExperimentGlobals, c *Config)
}

// projections - единственный источник истины о том, какие глобальные параметры важны для драйвера.
var projections = []globalProjection{
	{source: "V_max", dest: "v_max_v", apply: func(g models.ExperimentGlobals, c *Config) { c.VMaxV = g.VMax }},
	{source: "V_min", dest: "v_min_v", apply: func(g models.ExperimentGlobals, c *Config) { c.VMinV = g.VMin }},
}

// ProjectedFields возвращает пары глобальное поле плана -> поле конфигурации.
func ProjectedFields() map[string]string {
	out := make(map[string]string, len(projections))
	for _, p := range projections {
		out[p.source] = p.dest
	}
	return out
}

type setter func(c *Config, v interface{}) bool

func floatField(get func(c *Config) *float64) setter {
	return func(c *Config, v interface{}) bool {
		f, ok := values.Float(v)
		if ok {
			*get(c) = f
		}
		return ok
	}
}

func intField(get func(c *Config) *int) setter {
	return func(c *Config, v interface{}) bool {
		n, ok := values.Int(v)
		if ok {
			*get(c) = n
		}
		return ok
	}
}

func stringField(get func(c *Config) *string) setter {
	return func(c *Config, v interface{}) bool {
		s, ok := values.String(v)
		if ok {
			*get(c) = s
		}
		return ok
	}
}

// fieldSpec описывает поле конфигурации, доступное для переопределения.
type fieldSpec struct {
	kind string
	set  setter
}

// fields - закрытая таблица имя поля -> типизированный сеттер.
var fields = map[string]fieldSpec{
	"channel":                        {"integer", intField(func(c *Config) *int { return &c.Channel })},
	"test_name":                      {"string", stringField(func(c *Config) *string { return &c.TestName })},
	"c_rate_ah":                      {"number", floatField(func(c *Config) *float64 { return &c.CRateAh })},
	"v_max_v":                        {"number", floatField(func(c *Config) *float64 { return &c.VMaxV })},
	"v_min_v":                        {"number", floatField(func(c *Config) *float64 { return &c.VMinV })},
	"v_max_safety_limit_v":           {"number", floatField(func(c *Config) *float64 { return &c.VMaxSafetyLimitV })},
	"v_min_safety_limit_v":           {"number", floatField(func(c *Config) *float64 { return &c.VMinSafetyLimitV })},
	"i_max_safety_limit_a":           {"number", floatField(func(c *Config) *float64 { return &c.IMaxSafetyLimitA })},
	"i_min_safety_limit_a":           {"number", floatField(func(c *Config) *float64 { return &c.IMinSafetyLimitA })},
	"data_record_time_s":             {"number", floatField(func(c *Config) *float64 { return &c.DataRecordTimeS })},
	"data_record_voltage_delta_vbys": {"number", floatField(func(c *Config) *float64 { return &c.DataRecordVoltageDeltaVbyS })},
	"data_record_current_delta_abys": {"number", floatField(func(c *Config) *float64 { return &c.DataRecordCurrentDeltaAbyS })},
	"test_procedure":                 {"string", stringField(func(c *Config) *string { return &c.Procedure })},
	"server_ip":                      {"string", stringField(func(c *Config) *string { return &c.ServerIP })},
	"json_server_port":               {"integer", intField(func(c *Config) *int { return &c.JSONServerPort })},
	"tcp_server_port":                {"integer", intField(func(c *Config) *int { return &c.TCPServerPort })},
	"msg_buffer_size_bytes":          {"integer", intField(func(c *Config) *int { return &c.MsgBufferSizeBytes })},
}

// HasField сообщает, есть ли в конфигурации Maccor поле с таким именем.
func HasField(name string) bool {
	_, ok := fields[name]
	return ok
}

// Mapper строит Config из плана эксперимента и пользовательских переопределений.
type Mapper struct {
	logger logrus.FieldLogger
}

var _ drivers.Mapper = (*Mapper)(nil)

func NewMapper(logger logrus.FieldLogger) *Mapper {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Mapper{logger: logger}
}

func (m *Mapper) Name() string { return DriverName }

// Map заполняет значения по умолчанию, переносит глобальные параметры плана
// и применяет переопределения в порядке их следования. Неизвестные ключи пропускаются.
func (m *Mapper) Map(plan *models.ExperimentPlan, overrides drivers.Overrides) (drivers.DriverConfig, error) {
	return m.Convert(plan, overrides)
}

// Convert - типизированный вариант Map.
func (m *Mapper) Convert(plan *models.ExperimentPlan, overrides drivers.Overrides) (*Config, error) {
	cfg := NewConfig()

	for _, p := range projections {
		p.apply(plan.Globals, cfg)
	}

	for _, o := range overrides {
		spec, ok := fields[o.Key]
		if !ok {
			m.logger.WithField("key", o.Key).Debug("Переопределение пропущено: нет такого поля")
			continue
		}
		if !spec.set(cfg, o.Value) {
			return nil, &cerrors.InvalidFieldError{Path: "overrides", Field: o.Key, Value: o.Value, Want: spec.kind}
		}
	}

	return cfg, nil
}
