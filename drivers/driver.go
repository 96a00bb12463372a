package drivers

import (
	"fmt"

	"github.com/iwtcode/cyclerAdapter/models"
	cerrors "github.com/iwtcode/cyclerAdapter/pkg/errors"
)

// DriverConfig - плоская конфигурация конкретного драйвера циклера.
type DriverConfig interface {
	// ToDocument сериализует конфигурацию в плоский набор ключ/значение для внешнего драйвера.
	ToDocument() map[string]interface{}
	// TestProcedure возвращает имя процедуры, которую нужно запустить на оборудовании.
	TestProcedure() string
}

// Mapper переводит общий план эксперимента в конфигурацию драйвера.
// Map не изменяет plan и overrides; одинаковые входы дают одинаковый результат.
type Mapper interface {
	Name() string
	Map(plan *models.ExperimentPlan, overrides Overrides) (DriverConfig, error)
}

// Override - одна пара ключ/значение, заданная пользователем поверх значений по умолчанию.
type Override struct {
	Key   string
	Value interface{}
}

// Overrides применяются в порядке, заданном вызывающей стороной.
type Overrides []Override

// Connector - граница с внешним драйвером оборудования.
type Connector interface {
	// Connect устанавливает соединение с сериализованной конфигурацией.
	Connect(config map[string]interface{}) bool
	// StartTest запускает процедуру испытания по имени.
	StartTest(procedure string) bool
}

// Run передает конфигурацию внешнему драйверу и запускает процедуру испытания.
func Run(conn Connector, cfg DriverConfig) error {
	if !conn.Connect(cfg.ToDocument()) {
		return cerrors.ErrConnectFailed
	}
	if !conn.StartTest(cfg.TestProcedure()) {
		return fmt.Errorf("%w: %q", cerrors.ErrStartFailed, cfg.TestProcedure())
	}
	return nil
}
