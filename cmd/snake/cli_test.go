package main

import (
	"strings"
	"testing"

	"github.com/vovakirdan/snake-astar/internal/config"
	"github.com/vovakirdan/snake-astar/internal/grid"
)

func TestParseCell(t *testing.T) {
	c, err := parseCell(" 10, 5 ")
	if err != nil {
		t.Fatalf("parseCell() failed: %v", err)
	}
	if c != (grid.Cell{Col: 10, Row: 5}) {
		t.Errorf("parseCell() = %v, expected (10,5)", c)
	}

	for _, bad := range []string{"", "10", "a,5", "10,b"} {
		if _, err := parseCell(bad); err == nil {
			t.Errorf("parseCell(%q) should fail", bad)
		}
	}
}

func TestParseCells(t *testing.T) {
	cells, err := parseCells("10,5;9,5 8,5")
	if err != nil {
		t.Fatalf("parseCells() failed: %v", err)
	}
	expected := []grid.Cell{{Col: 10, Row: 5}, {Col: 9, Row: 5}, {Col: 8, Row: 5}}
	if len(cells) != len(expected) {
		t.Fatalf("parseCells() = %v, expected %v", cells, expected)
	}
	for i := range expected {
		if cells[i] != expected[i] {
			t.Errorf("parseCells()[%d] = %v, expected %v", i, cells[i], expected[i])
		}
	}

	if _, err := parseCells(" ; "); err == nil {
		t.Error("parseCells() of an empty list should fail")
	}
}

func TestFitConfig(t *testing.T) {
	cfg, err := fitConfig(config.DefaultSnakeConfig(), 100, 40)
	if err != nil {
		t.Fatalf("fitConfig() failed: %v", err)
	}
	m, err := cfg.Mapper()
	if err != nil {
		t.Fatalf("Mapper() failed: %v", err)
	}
	if b := m.Bounds(); b.Cols != 98 || b.Rows != 36 {
		t.Errorf("Bounds() = %+v, expected 98x36", b)
	}

	if _, err := fitConfig(config.DefaultSnakeConfig(), 10, 6); err == nil {
		t.Error("fitConfig() should reject a terminal the start body does not fit")
	}
}

func TestDrawLayout(t *testing.T) {
	b := grid.Bounds{Cols: 5, Rows: 2}
	body := []grid.Cell{{Col: 1, Row: 0}, {Col: 0, Row: 0}}
	path := []grid.Cell{{Col: 1, Row: 0}, {Col: 2, Row: 0}, {Col: 3, Row: 0}}

	got := drawLayout(b, body, grid.Cell{Col: 3, Row: 0}, path)
	expected := strings.Join([]string{
		"+-----+",
		"|o@.* |",
		"|     |",
		"+-----+",
		"",
	}, "\n")
	if got != expected {
		t.Errorf("drawLayout() =\n%s\nexpected\n%s", got, expected)
	}
}
