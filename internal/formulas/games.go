package formulas

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-calculators/internal/calculator"
)

// payoffCells names the four cells of a 2x2 game in row-major order.
var payoffCells = [4]string{"r1c1", "r1c2", "r2c1", "r2c2"}

func nashEquilibriumSpec() calculator.Spec {
	fields := make([]calculator.Field, 0, 2*len(payoffCells))
	for _, cell := range payoffCells {
		row, col := cellPosition(cell)
		fields = append(fields,
			permissive("p1"+cell, fmt.Sprintf("Player 1 payoff (row %d, column %d)", row+1, col+1), 0),
			permissive("p2"+cell, fmt.Sprintf("Player 2 payoff (row %d, column %d)", row+1, col+1), 0),
		)
	}

	outputs := []calculator.Output{output("equilibria", "Pure-strategy equilibria", calculator.Count)}
	for _, cell := range payoffCells {
		row, col := cellPosition(cell)
		outputs = append(outputs, output(cell, fmt.Sprintf("Row %d, column %d is an equilibrium", row+1, col+1), calculator.Flag))
	}
	outputs = append(outputs, output("cells", "Equilibrium cells", calculator.Text))

	return calculator.Spec{
		ID:       "nash-equilibrium",
		Title:    "Nash Equilibrium Finder",
		Category: CategoryLearning,
		Summary:  "Pure-strategy equilibria of a two-player, two-strategy game.",
		About: `## How it works

Player 1 picks a row, player 2 picks a column. A cell is an equilibrium
when neither player gains by switching on their own:

- player 1's payoff is at least as high as in the other row of the same
  column, and
- player 2's payoff is at least as high as in the other column of the
  same row.

Only pure strategies are checked; mixed-strategy equilibria are not
searched for.

| | Column 1 | Column 2 |
|---|---|---|
| Row 1 | (p1, p2) | (p1, p2) |
| Row 2 | (p1, p2) | (p1, p2) |
`,
		Fields:   fields,
		Outputs:  outputs,
		Evaluate: evaluateNash,
	}
}

func cellPosition(cell string) (row, col int) {
	return int(cell[1] - '1'), int(cell[3] - '1')
}

func evaluateNash(in calculator.Inputs) (calculator.Result, error) {
	var p1, p2 [2][2]float64
	for _, cell := range payoffCells {
		row, col := cellPosition(cell)
		p1[row][col] = in.Number("p1" + cell)
		p2[row][col] = in.Number("p2" + cell)
	}

	res := calculator.NewResult()
	var found []string
	for _, cell := range payoffCells {
		row, col := cellPosition(cell)
		stable := p1[row][col] >= p1[1-row][col] && p2[row][col] >= p2[row][1-col]
		flag := 0.0
		if stable {
			flag = 1
			found = append(found, fmt.Sprintf("(row %d, column %d)", row+1, col+1))
		}
		res.Set(cell, flag)
	}

	res.Set("equilibria", float64(len(found)))
	if len(found) == 0 {
		res.Text["cells"] = "none"
		res.Label, res.Status = "No pure-strategy equilibrium", calculator.StatusNeutral
		return res, nil
	}
	res.Text["cells"] = strings.Join(found, ", ")
	if len(found) == 1 {
		res.Label = "Unique pure-strategy equilibrium"
	} else {
		res.Label = fmt.Sprintf("%d pure-strategy equilibria", len(found))
	}
	res.Status = calculator.StatusHealthy
	return res, nil
}
