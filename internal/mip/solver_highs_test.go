package mip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHiGHSSolution(t *testing.T) {
	t.Run("Optimal raw solution file", func(t *testing.T) {
		// Arrange
		output := "Model status\n" +
			"Optimal\n" +
			"\n" +
			"# Primal solution values\n" +
			"Feasible\n" +
			"Objective 2\n" +
			"# Columns 3\n" +
			"x0 1\n" +
			"x1 0\n" +
			"x2 1\n" +
			"# Rows 2\n" +
			"cover 1\n" +
			"cap 0\n" +
			"\n" +
			"# Dual solution values\n" +
			"None\n" +
			"\n" +
			"# Basis\n" +
			"None\n"

		// Act
		solution, err := parseHiGHSSolution(output, compactModel())

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, StatusOptimal, solution.Status)
		assert.InDelta(t, 2.0, solution.Objective, 1e-9)
		assert.Equal(t, []float64{1, 0, 1}, solution.Values)
	})

	t.Run("Infeasible has no column block", func(t *testing.T) {
		// Arrange
		output := "Model status\n" +
			"Infeasible\n"

		// Act
		solution, err := parseHiGHSSolution(output, compactModel())

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, StatusInfeasible, solution.Status)
		assert.Nil(t, solution.Values)
	})

	t.Run("Time limit maps to timeout", func(t *testing.T) {
		// Arrange
		output := "Model status\n" +
			"Time limit reached\n"

		// Act
		solution, err := parseHiGHSSolution(output, compactModel())

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, StatusTimeout, solution.Status)
	})

	t.Run("Optimal without column block is an error", func(t *testing.T) {
		// Arrange
		output := "Model status\n" +
			"Optimal\n"

		// Act
		_, err := parseHiGHSSolution(output, compactModel())

		// Assert
		assert.Error(t, err)
	})
}
