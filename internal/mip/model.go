package mip

import (
	"log"
	"slices"
)

// Var is a column index into a model's variable block.
type Var int

type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}
	return "minimize"
}

type Relation int

const (
	LessEq Relation = iota
	GreaterEq
	Equal
)

func (r Relation) String() string {
	switch r {
	case GreaterEq:
		return ">="
	case Equal:
		return "="
	default:
		return "<="
	}
}

type Term struct {
	Var   Var
	Coeff float64
}

// LinearExpr is a sum of coefficient*variable terms. Terms keep insertion
// order and adding the same variable twice merges the coefficients.
type LinearExpr struct {
	terms []Term
	index map[Var]int
}

// Sum builds the unit-coefficient sum of the given variables.
func Sum(vars ...Var) LinearExpr {
	var expr LinearExpr
	for _, v := range vars {
		expr.Add(v, 1)
	}
	return expr
}

func (e *LinearExpr) Add(v Var, coeff float64) {
	if e.index == nil {
		e.index = make(map[Var]int)
	}
	if i, ok := e.index[v]; ok {
		e.terms[i].Coeff += coeff
		return
	}
	e.index[v] = len(e.terms)
	e.terms = append(e.terms, Term{Var: v, Coeff: coeff})
}

func (e LinearExpr) Terms() []Term {
	return slices.Clone(e.terms)
}

func (e LinearExpr) Len() int {
	return len(e.terms)
}

// Value evaluates the expression against a full column-value vector.
func (e LinearExpr) Value(values []float64) float64 {
	total := 0.0
	for _, t := range e.terms {
		total += t.Coeff * values[t.Var]
	}
	return total
}

// Constraint is a single linear relation over model columns.
type Constraint struct {
	Name string
	Expr LinearExpr
	Rel  Relation
	RHS  float64
}

// Model is a binary integer program: named binary columns, an append-only
// constraint sequence and at most one active objective. Constraints are never
// removed; a solve over an extended model goes through Clone.
type Model struct {
	name         string
	cols         []string
	colIndex     map[string]Var
	constraints  []Constraint
	objective    LinearExpr
	sense        Sense
	hasObjective bool
}

func NewModel(name string) *Model {
	return &Model{
		name:     name,
		colIndex: make(map[string]Var),
	}
}

func (m *Model) Name() string {
	return m.name
}

func (m *Model) AddBinary(name string) Var {
	if _, ok := m.colIndex[name]; ok {
		log.Panicf("column %q added twice", name)
	}
	v := Var(len(m.cols))
	m.cols = append(m.cols, name)
	m.colIndex[name] = v
	return v
}

func (m *Model) NumVars() int {
	return len(m.cols)
}

func (m *Model) ColumnName(v Var) string {
	return m.cols[v]
}

// Column resolves a column name back to its variable index.
func (m *Model) Column(name string) (Var, bool) {
	v, ok := m.colIndex[name]
	return v, ok
}

func (m *Model) AddConstraint(c Constraint) {
	m.constraints = append(m.constraints, c)
}

// Constraints returns a snapshot of the constraint sequence in insertion
// order, so a stage's exact input can be inspected after the fact.
func (m *Model) Constraints() []Constraint {
	return slices.Clone(m.constraints)
}

func (m *Model) NumConstraints() int {
	return len(m.constraints)
}

func (m *Model) SetObjective(expr LinearExpr, sense Sense) {
	m.objective = expr
	m.sense = sense
	m.hasObjective = true
}

func (m *Model) Objective() (LinearExpr, Sense, bool) {
	return m.objective, m.sense, m.hasObjective
}

// Clone copies the model so a run can append constraints and swap objectives
// without touching the base. The clone starts with no active objective.
func (m *Model) Clone() *Model {
	clone := &Model{
		name:        m.name,
		cols:        slices.Clone(m.cols),
		colIndex:    make(map[string]Var, len(m.colIndex)),
		constraints: slices.Clone(m.constraints),
	}
	for name, v := range m.colIndex {
		clone.colIndex[name] = v
	}
	return clone
}
