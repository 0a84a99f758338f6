package mip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func compactModel() *Model {
	model := NewModel("compact")
	model.AddBinary("x0")
	model.AddBinary("x1")
	model.AddBinary("x2")
	return model
}

func TestParseCBCSolution(t *testing.T) {
	t.Run("Optimal with column rows", func(t *testing.T) {
		// Arrange
		output := "Optimal - objective value 2.00000000\n" +
			"      0 x0               1                       2\n" +
			"      1 x1               0                       1\n" +
			"      2 x2               1                       0\n"

		// Act
		solution, err := parseCBCSolution(output, compactModel())

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, StatusOptimal, solution.Status)
		assert.InDelta(t, 2.0, solution.Objective, 1e-9)
		assert.Equal(t, []float64{1, 0, 1}, solution.Values)
		assert.Equal(t, []Var{0, 2}, solution.Picked())
	})

	t.Run("Violation markers are skipped", func(t *testing.T) {
		// Arrange
		output := "Optimal - objective value 1.00000000\n" +
			"** 0 x0 1 1\n" +
			"   1 x1 0 0\n" +
			"   2 x2 0 0\n"

		// Act
		solution, err := parseCBCSolution(output, compactModel())

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, []float64{1, 0, 0}, solution.Values)
	})

	t.Run("Infeasible", func(t *testing.T) {
		// Act
		solution, err := parseCBCSolution("Infeasible - objective value 0.00000000\n", compactModel())

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, StatusInfeasible, solution.Status)
		assert.Nil(t, solution.Values)
	})

	t.Run("Time limit maps to timeout", func(t *testing.T) {
		// Act
		solution, err := parseCBCSolution("Stopped on time limit - objective value 3.00000000\n", compactModel())

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, StatusTimeout, solution.Status)
	})

	t.Run("Unbounded", func(t *testing.T) {
		// Act
		solution, err := parseCBCSolution("Unbounded\n", compactModel())

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, StatusUnbounded, solution.Status)
	})

	t.Run("Empty file is an error", func(t *testing.T) {
		// Act
		_, err := parseCBCSolution("   \n", compactModel())

		// Assert
		assert.Error(t, err)
	})

	t.Run("Garbled column value is an error", func(t *testing.T) {
		// Arrange
		output := "Optimal - objective value 1.00000000\n" +
			"0 x0 one 0\n"

		// Act
		_, err := parseCBCSolution(output, compactModel())

		// Assert
		assert.Error(t, err)
	})
}
