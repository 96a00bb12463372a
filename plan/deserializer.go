package plan

import (
	"io"
	"slices"
	"sort"

	"github.com/iwtcode/cyclerAdapter/internal/values"
	"github.com/iwtcode/cyclerAdapter/models"
	cerrors "github.com/iwtcode/cyclerAdapter/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Ключи документа плана.
const (
	KeyGlobals      = "globals"
	KeyInstructions = "instructions"
	KeyType         = "type"
	KeyValue        = "value"
	KeyTime         = "time"
	KeyTermination  = "termination"
	KeyName         = "name"
	KeyRepeat       = "repeat"
	KeySequence     = "sequence"
)

// Deserializer строит дерево ExperimentPlan из обобщенного документа.
type Deserializer struct {
	logger logrus.FieldLogger
}

// NewDeserializer создает десериализатор. При logger == nil журнал отключен.
func NewDeserializer(logger logrus.FieldLogger) *Deserializer {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Deserializer{logger: logger}
}

// Deserialize - сокращение для NewDeserializer(nil).Deserialize(doc).
func Deserialize(doc map[string]interface{}) (*models.ExperimentPlan, error) {
	return NewDeserializer(nil).Deserialize(doc)
}

// Deserialize проверяет обязательные поля и за один проход строит дерево плана.
// Первая найденная ошибка возвращается сразу.
func (d *Deserializer) Deserialize(doc map[string]interface{}) (*models.ExperimentPlan, error) {
	rawGlobals, ok := lookup(doc, KeyGlobals)
	if !ok {
		return nil, &cerrors.MissingFieldError{Field: KeyGlobals}
	}
	globalsDoc, ok := values.Map(rawGlobals)
	if !ok {
		return nil, &cerrors.InvalidFieldError{Field: KeyGlobals, Value: rawGlobals, Want: "mapping"}
	}
	globals, err := deserializeGlobals(globalsDoc)
	if err != nil {
		return nil, err
	}

	rawInstructions, ok := lookup(doc, KeyInstructions)
	if !ok {
		return nil, &cerrors.MissingFieldError{Field: KeyInstructions}
	}
	items, ok := values.List(rawInstructions)
	if !ok {
		return nil, &cerrors.InvalidFieldError{Field: KeyInstructions, Value: rawInstructions, Want: "list"}
	}
	nodes, err := d.deserializeSequence(KeyInstructions, items)
	if err != nil {
		return nil, err
	}

	return &models.ExperimentPlan{Globals: globals, Instructions: nodes}, nil
}

func deserializeGlobals(doc map[string]interface{}) (models.ExperimentGlobals, error) {
	var g models.ExperimentGlobals

	textFields := []struct {
		key string
		dst *string
	}{
		{"V_unit", &g.VUnit},
		{"C_unit", &g.CUnit},
		{"T_unit", &g.TUnit},
		{"duration_unit", &g.DurationUnit},
	}
	for _, f := range textFields {
		v, ok := lookup(doc, f.key)
		if !ok {
			return g, &cerrors.MissingFieldError{Path: KeyGlobals, Field: f.key}
		}
		s, ok := values.String(v)
		if !ok {
			return g, &cerrors.InvalidFieldError{Path: KeyGlobals, Field: f.key, Value: v, Want: "string"}
		}
		*f.dst = s
	}

	numberFields := []struct {
		key string
		dst *float64
	}{
		{"V_min", &g.VMin},
		{"V_max", &g.VMax},
		{"T_ambient", &g.TAmbient},
		{"T_max", &g.TMax},
	}
	for _, f := range numberFields {
		v, ok := lookup(doc, f.key)
		if !ok {
			return g, &cerrors.MissingFieldError{Path: KeyGlobals, Field: f.key}
		}
		n, ok := values.Float(v)
		if !ok {
			return g, &cerrors.InvalidFieldError{Path: KeyGlobals, Field: f.key, Value: v, Want: "number"}
		}
		*f.dst = n
	}

	return g, nil
}

// deserializeSequence разбирает список узлов. Элемент с ключом type становится
// инструкцией, с ключом sequence - вложенной последовательностью, остальные пропускаются.
func (d *Deserializer) deserializeSequence(path string, items []interface{}) ([]models.PlanNode, error) {
	nodes := make([]models.PlanNode, 0, len(items))
	for i, raw := range items {
		itemPath := index(path, i)
		item, ok := values.Map(raw)
		if !ok {
			d.logger.WithField("path", itemPath).Debug("Пропуск элемента: не является отображением")
			continue
		}

		if _, isInstruction := item[KeyType]; isInstruction {
			instr, err := deserializeInstruction(itemPath, item)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, instr)
		} else if _, isSequence := item[KeySequence]; isSequence {
			seq, err := d.deserializeNested(itemPath, item)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, seq)
		} else {
			d.logger.WithField("path", itemPath).Debug("Пропуск элемента: нет ключей type и sequence")
		}
	}
	return nodes, nil
}

func (d *Deserializer) deserializeNested(path string, item map[string]interface{}) (*models.Sequence, error) {
	var children []models.PlanNode
	if raw, ok := lookup(item, KeySequence); ok {
		list, ok := values.List(raw)
		if !ok {
			return nil, &cerrors.InvalidFieldError{Path: path, Field: KeySequence, Value: raw, Want: "list"}
		}
		var err error
		children, err = d.deserializeSequence(path+"."+KeySequence, list)
		if err != nil {
			return nil, err
		}
	} else {
		children = []models.PlanNode{}
	}

	name, err := optionalString(path, item, KeyName)
	if err != nil {
		return nil, err
	}
	repeat, err := repeatCount(path, item)
	if err != nil {
		return nil, err
	}

	return &models.Sequence{Children: children, Name: name, Repeat: repeat}, nil
}

func deserializeInstruction(path string, item map[string]interface{}) (*models.Instruction, error) {
	rawType, ok := lookup(item, KeyType)
	if !ok {
		return nil, &cerrors.MissingFieldError{Path: path, Field: KeyType}
	}
	typeStr, _ := values.String(rawType)
	kind := models.InstructionType(typeStr)
	if !kind.Valid() {
		return nil, &cerrors.InvalidFieldError{Path: path, Field: KeyType, Value: rawType, Want: "instruction type"}
	}

	instr := &models.Instruction{Type: kind}

	if raw, ok := lookup(item, KeyValue); ok {
		v, ok := values.Float(raw)
		if !ok {
			return nil, &cerrors.InvalidFieldError{Path: path, Field: KeyValue, Value: raw, Want: "number"}
		}
		instr.Value = &v
	}

	rawTime, ok := lookup(item, KeyTime)
	if !ok {
		return nil, &cerrors.MissingFieldError{Path: path, Field: KeyTime}
	}
	t, ok := values.Float(rawTime)
	if !ok {
		return nil, &cerrors.InvalidFieldError{Path: path, Field: KeyTime, Value: rawTime, Want: "number"}
	}
	instr.Time = t

	terms, err := deserializeTerminations(path, item)
	if err != nil {
		return nil, err
	}
	instr.Termination = terms

	if instr.Name, err = optionalString(path, item, KeyName); err != nil {
		return nil, err
	}
	if instr.Repeat, err = repeatCount(path, item); err != nil {
		return nil, err
	}

	return instr, nil
}

// deserializeTerminations сохраняет порядок объявления условий.
func deserializeTerminations(path string, item map[string]interface{}) ([]models.TerminationCondition, error) {
	terms := []models.TerminationCondition{}
	raw, ok := lookup(item, KeyTermination)
	if !ok {
		return terms, nil
	}
	list, ok := values.List(raw)
	if !ok {
		return nil, &cerrors.InvalidFieldError{Path: path, Field: KeyTermination, Value: raw, Want: "list"}
	}

	for i, rawEntry := range list {
		entry, ok := values.Map(rawEntry)
		if !ok {
			return nil, &cerrors.InvalidFieldError{Path: path, Field: index(KeyTermination, i), Value: rawEntry, Want: "mapping"}
		}
		rawType, ok := lookup(entry, KeyType)
		if !ok {
			return nil, &cerrors.InvalidTerminationError{Path: path, Index: i, Field: KeyType}
		}
		rawValue, ok := lookup(entry, KeyValue)
		if !ok {
			return nil, &cerrors.InvalidTerminationError{Path: path, Index: i, Field: KeyValue}
		}
		if key, ok := unexpectedKey(entry, KeyType, KeyValue, KeyName); ok {
			return nil, &cerrors.InvalidTerminationError{Path: path, Index: i, Field: key, Unexpected: true}
		}

		entryPath := path + "." + index(KeyTermination, i)
		typeStr, _ := values.String(rawType)
		kind := models.TerminationType(typeStr)
		if !kind.Valid() {
			return nil, &cerrors.InvalidFieldError{Path: entryPath, Field: KeyType, Value: rawType, Want: "termination type"}
		}
		value, ok := values.Float(rawValue)
		if !ok {
			return nil, &cerrors.InvalidFieldError{Path: entryPath, Field: KeyValue, Value: rawValue, Want: "number"}
		}
		name, err := optionalString(entryPath, entry, KeyName)
		if err != nil {
			return nil, err
		}

		terms = append(terms, models.TerminationCondition{Type: kind, Value: value, Name: name})
	}
	return terms, nil
}

// unexpectedKey возвращает первый по алфавиту ключ вне allowed.
func unexpectedKey(entry map[string]interface{}, allowed ...string) (string, bool) {
	var extra []string
	for k := range entry {
		if !slices.Contains(allowed, k) {
			extra = append(extra, k)
		}
	}
	if len(extra) == 0 {
		return "", false
	}
	sort.Strings(extra)
	return extra[0], true
}

func optionalString(path string, item map[string]interface{}, key string) (*string, error) {
	raw, ok := lookup(item, key)
	if !ok {
		return nil, nil
	}
	s, ok := values.String(raw)
	if !ok {
		return nil, &cerrors.InvalidFieldError{Path: path, Field: key, Value: raw, Want: "string"}
	}
	return &s, nil
}

// repeatCount возвращает 1, если ключ repeat не задан.
func repeatCount(path string, item map[string]interface{}) (int, error) {
	raw, ok := lookup(item, KeyRepeat)
	if !ok {
		return 1, nil
	}
	n, ok := values.Int(raw)
	if !ok || n < 0 {
		return 0, &cerrors.InvalidFieldError{Path: path, Field: KeyRepeat, Value: raw, Want: "non-negative integer"}
	}
	return n, nil
}
