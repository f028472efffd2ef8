package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-astar/internal/grid"
	"github.com/vovakirdan/snake-astar/internal/policy"
)

var (
	flagHead string
	flagFood string
	flagBody string
	flagDraw bool
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the autopilot's move for a layout",
	Long: `Ask the autopilot for one move on the configured grid and print the
chosen direction, the rule that chose it and the path it follows.

Cells are given as col,row. The body lists segments head first, separated
by ';' or spaces; when omitted the snake is just its head.

Examples:
  snake path --head 10,5 --food 15,5
  snake path --head 8,10 --food 10,10 --body "8,10;9,10;9,11;10,11;11,11;11,10;11,9;10,9;9,9"
  snake path --head 3,3 --food 40,20 --draw`,
	Args: cobra.NoArgs,
	RunE: runPath,
}

func init() {
	pathCmd.Flags().StringVar(&flagHead, "head", "10,5", "Head cell")
	pathCmd.Flags().StringVar(&flagFood, "food", "15,5", "Food cell")
	pathCmd.Flags().StringVar(&flagBody, "body", "", "Body cells, head first")
	pathCmd.Flags().BoolVar(&flagDraw, "draw", false, "Draw the grid with the path")
}

func runPath(cmd *cobra.Command, _ []string) error {
	m, err := appConfig.Mapper()
	if err != nil {
		return err
	}

	head, err := parseCell(flagHead)
	if err != nil {
		return fmt.Errorf("--head: %w", err)
	}
	food, err := parseCell(flagFood)
	if err != nil {
		return fmt.Errorf("--food: %w", err)
	}
	body := []grid.Cell{head}
	if flagBody != "" {
		if body, err = parseCells(flagBody); err != nil {
			return fmt.Errorf("--body: %w", err)
		}
		if body[0] != head {
			return fmt.Errorf("--body must start with the head %v, got %v", head, body[0])
		}
	}

	d, err := policy.New(m).NextMove(m.ToPixel(head), m.ToPixel(food), m.CellsToPixels(body))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	b := m.Bounds()
	fmt.Fprintf(out, "grid:     %dx%d cells of %dpx\n", b.Cols, b.Rows, m.CellSize())
	fmt.Fprintf(out, "head:     %v  food: %v  length: %d\n", head, food, len(body))
	fmt.Fprintf(out, "move:     %s (%s)\n", d.Direction, d.Source)
	fmt.Fprintf(out, "expanded: %d\n", d.Expanded)

	cells := make([]grid.Cell, len(d.Path))
	for i, p := range d.Path {
		cells[i] = m.ToGrid(p)
	}
	if len(cells) == 0 {
		fmt.Fprintln(out, "path:     none")
	} else {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = c.String()
		}
		fmt.Fprintf(out, "path:     %d cells\n          %s\n", len(cells), strings.Join(parts, " "))
	}

	if flagDraw {
		fmt.Fprintln(out)
		fmt.Fprint(out, drawLayout(b, body, food, cells))
	}
	return nil
}

// drawLayout renders the grid as text: '@' head, 'o' body, '*' food and
// '.' path.
func drawLayout(b grid.Bounds, body []grid.Cell, food grid.Cell, path []grid.Cell) string {
	rows := make([][]byte, b.Rows)
	for r := range rows {
		rows[r] = []byte(strings.Repeat(" ", b.Cols))
	}
	set := func(c grid.Cell, ch byte) {
		if c.Col >= 0 && c.Col < b.Cols && c.Row >= 0 && c.Row < b.Rows {
			rows[c.Row][c.Col] = ch
		}
	}
	for _, c := range path {
		set(c, '.')
	}
	set(food, '*')
	for i := len(body) - 1; i >= 0; i-- {
		ch := byte('o')
		if i == 0 {
			ch = '@'
		}
		set(body[i], ch)
	}

	var sb strings.Builder
	border := "+" + strings.Repeat("-", b.Cols) + "+\n"
	sb.WriteString(border)
	for _, row := range rows {
		sb.WriteByte('|')
		sb.Write(row)
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}

// parseCell parses "col,row".
func parseCell(s string) (grid.Cell, error) {
	colStr, rowStr, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return grid.Cell{}, fmt.Errorf("cell %q: expected col,row", s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil {
		return grid.Cell{}, fmt.Errorf("cell %q: bad column: %w", s, err)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil {
		return grid.Cell{}, fmt.Errorf("cell %q: bad row: %w", s, err)
	}
	return grid.Cell{Col: col, Row: row}, nil
}

// parseCells parses a list of cells separated by ';' or whitespace.
func parseCells(s string) ([]grid.Cell, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("no cells in %q", s)
	}
	cells := make([]grid.Cell, 0, len(fields))
	for _, f := range fields {
		c, err := parseCell(f)
		if err != nil {
			return nil, err
		}
		cells = append(cells, c)
	}
	return cells, nil
}
