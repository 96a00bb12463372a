package plan

import (
	"math"

	"github.com/iwtcode/cyclerAdapter/models"
)

// VisitFunc вызывается для каждого узла; depth верхнего уровня равен 0.
// Возврат false прекращает спуск в дочерние узлы последовательности.
type VisitFunc func(node models.PlanNode, depth int) bool

// Walk обходит узлы в глубину в порядке объявления.
func Walk(nodes []models.PlanNode, fn VisitFunc) {
	walk(nodes, 0, fn)
}

func walk(nodes []models.PlanNode, depth int, fn VisitFunc) {
	for _, n := range nodes {
		descend := fn(n, depth)
		if seq, ok := n.(*models.Sequence); ok && descend {
			walk(seq.Children, depth+1, fn)
		}
	}
}

// Summary - сводка по дереву плана.
type Summary struct {
	Instructions  int `json:"instructions"`
	Sequences     int `json:"sequences"`
	MaxDepth      int `json:"max_depth"`
	ExpandedSteps int `json:"expanded_steps"` // С учетом repeat на каждом уровне, не больше math.MaxInt
}

// Summarize считает узлы дерева и число шагов после развертки повторов.
func Summarize(p *models.ExperimentPlan) Summary {
	var s Summary
	Walk(p.Instructions, func(n models.PlanNode, depth int) bool {
		if depth+1 > s.MaxDepth {
			s.MaxDepth = depth + 1
		}
		switch n.(type) {
		case *models.Instruction:
			s.Instructions++
		case *models.Sequence:
			s.Sequences++
		}
		return true
	})
	s.ExpandedSteps = expandedSteps(p.Instructions)
	return s
}

func expandedSteps(nodes []models.PlanNode) int {
	total := 0
	for _, n := range nodes {
		switch v := n.(type) {
		case *models.Instruction:
			total = addSat(total, v.Repeat)
		case *models.Sequence:
			total = addSat(total, mulSat(v.Repeat, expandedSteps(v.Children)))
		}
	}
	return total
}

// addSat и mulSat работают с неотрицательными счетчиками и упираются в math.MaxInt.
func addSat(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func mulSat(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}
