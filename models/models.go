package models

// InstructionType задает вид шага испытания.
type InstructionType string

const (
	InstructionCurrent  InstructionType = "current"
	InstructionVoltage  InstructionType = "voltage"
	InstructionPower    InstructionType = "power"
	InstructionDuration InstructionType = "duration"
	InstructionHPPC     InstructionType = "HPPC"
	InstructionCCCV     InstructionType = "CCCV"
	InstructionRest     InstructionType = "rest"
)

// Valid сообщает, входит ли значение в перечисление.
func (t InstructionType) Valid() bool {
	switch t {
	case InstructionCurrent, InstructionVoltage, InstructionPower, InstructionDuration,
		InstructionHPPC, InstructionCCCV, InstructionRest:
		return true
	}
	return false
}

// TerminationType задает величину, по которой инструкция завершается досрочно.
type TerminationType string

const (
	TerminationCurrent     TerminationType = "current"
	TerminationVoltage     TerminationType = "voltage"
	TerminationPower       TerminationType = "power"
	TerminationDuration    TerminationType = "duration"
	TerminationTemperature TerminationType = "temperature"
)

func (t TerminationType) Valid() bool {
	switch t {
	case TerminationCurrent, TerminationVoltage, TerminationPower, TerminationDuration, TerminationTemperature:
		return true
	}
	return false
}

// ExperimentGlobals содержит глобальные параметры эксперимента.
// Значения принимаются как есть, перекрестная проверка не выполняется.
// Все числовые поля хранятся как float64: целое 25 из документа
// возвращается из ToDocument как 25.0, числовое значение не меняется.
type ExperimentGlobals struct {
	VUnit        string  `json:"V_unit" yaml:"V_unit"`
	CUnit        string  `json:"C_unit" yaml:"C_unit"`
	TUnit        string  `json:"T_unit" yaml:"T_unit"`
	DurationUnit string  `json:"duration_unit" yaml:"duration_unit"`
	VMin         float64 `json:"V_min" yaml:"V_min"`
	VMax         float64 `json:"V_max" yaml:"V_max"`
	TAmbient     float64 `json:"T_ambient" yaml:"T_ambient"`
	TMax         float64 `json:"T_max" yaml:"T_max"`
}

func (g ExperimentGlobals) ToDocument() map[string]interface{} {
	return map[string]interface{}{
		"V_unit":        g.VUnit,
		"C_unit":        g.CUnit,
		"T_unit":        g.TUnit,
		"duration_unit": g.DurationUnit,
		"V_min":         g.VMin,
		"V_max":         g.VMax,
		"T_ambient":     g.TAmbient,
		"T_max":         g.TMax,
	}
}

// TerminationCondition описывает порог досрочного завершения инструкции.
type TerminationCondition struct {
	Type  TerminationType `json:"type" yaml:"type"`
	Value float64         `json:"value" yaml:"value"`
	Name  *string         `json:"name,omitempty" yaml:"name,omitempty"`
}

func (c TerminationCondition) ToDocument() map[string]interface{} {
	doc := map[string]interface{}{
		"type":  string(c.Type),
		"value": c.Value,
	}
	if c.Name != nil {
		doc["name"] = *c.Name
	}
	return doc
}

// PlanNode - узел дерева плана: *Instruction или *Sequence.
// Набор реализаций закрыт, обход выполняется через type switch.
type PlanNode interface {
	ToDocument() map[string]interface{}
	planNode()
}

// Instruction - листовой шаг плана. Time, как и глобальные числа, хранится во float64.
type Instruction struct {
	Type        InstructionType        `json:"type" yaml:"type"`
	Value       *float64               `json:"value,omitempty" yaml:"value,omitempty"`
	Time        float64                `json:"time" yaml:"time"`
	Termination []TerminationCondition `json:"termination" yaml:"termination"`
	Name        *string                `json:"name,omitempty" yaml:"name,omitempty"`
	Repeat      int                    `json:"repeat" yaml:"repeat"`
}

func (*Instruction) planNode() {}

// ToDocument проецирует инструкцию обратно в обобщенный документ.
// Список termination присутствует всегда, даже пустой.
func (i *Instruction) ToDocument() map[string]interface{} {
	terms := make([]interface{}, 0, len(i.Termination))
	for _, t := range i.Termination {
		terms = append(terms, t.ToDocument())
	}
	doc := map[string]interface{}{
		"type":        string(i.Type),
		"time":        i.Time,
		"termination": terms,
		"repeat":      i.Repeat,
	}
	if i.Value != nil {
		doc["value"] = *i.Value
	}
	if i.Name != nil {
		doc["name"] = *i.Name
	}
	return doc
}

// Sequence - составной шаг: упорядоченный список инструкций и вложенных последовательностей.
type Sequence struct {
	Children []PlanNode `json:"sequence" yaml:"sequence"`
	Name     *string    `json:"name,omitempty" yaml:"name,omitempty"`
	Repeat   int        `json:"repeat" yaml:"repeat"`
}

func (*Sequence) planNode() {}

func (s *Sequence) ToDocument() map[string]interface{} {
	doc := map[string]interface{}{
		"sequence": NodesToDocument(s.Children),
		"repeat":   s.Repeat,
	}
	if s.Name != nil {
		doc["name"] = *s.Name
	}
	return doc
}

// ExperimentPlan - корень дерева плана.
type ExperimentPlan struct {
	Globals      ExperimentGlobals `json:"globals" yaml:"globals"`
	Instructions []PlanNode        `json:"instructions" yaml:"instructions"`
}

func (p *ExperimentPlan) ToDocument() map[string]interface{} {
	return map[string]interface{}{
		"globals":      p.Globals.ToDocument(),
		"instructions": NodesToDocument(p.Instructions),
	}
}

// NodesToDocument сохраняет порядок узлов.
func NodesToDocument(nodes []PlanNode) []interface{} {
	out := make([]interface{}, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ToDocument())
	}
	return out
}
