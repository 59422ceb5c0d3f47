package game

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/Mshel/pacagents/internal/agent"
)

const (
	wallRune    = '%'
	foodRune    = '.'
	capsuleRune = 'o'
	pacmanRune  = 'P'
	ghostRune   = 'G'
)

var (
	ErrUnknownLayout = errors.New("unknown layout")
	ErrInvalidLayout = errors.New("invalid layout")
)

//go:embed layouts/*.lay
var builtinLayouts embed.FS

// Layout is a static maze description. Row 0 of the source text is the top
// of the maze, so y counts up from the bottom row.
type Layout struct {
	Name        string
	Width       int
	Height      int
	walls       [][]bool // indexed [x][y]
	Food        []agent.Position
	Capsules    []agent.Position
	PacmanStart agent.Position
	GhostStarts []agent.Position
}

// ParseLayout reads a maze drawn with % walls, . food, o capsules,
// P for pacman and G for each ghost.
func ParseLayout(name string, r io.Reader) (*Layout, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read layout %s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidLayout, name)
	}

	layout := &Layout{
		Name:   name,
		Width:  len(rows[0]),
		Height: len(rows),
	}
	layout.walls = make([][]bool, layout.Width)
	for x := range layout.walls {
		layout.walls[x] = make([]bool, layout.Height)
	}

	pacmanFound := false
	for row, line := range rows {
		if len(line) != layout.Width {
			return nil, fmt.Errorf("%w: %s row %d has width %d, expected %d", ErrInvalidLayout, name, row, len(line), layout.Width)
		}
		y := layout.Height - 1 - row
		for x, cell := range line {
			p := agent.Position{X: x, Y: y}
			switch cell {
			case wallRune:
				layout.walls[x][y] = true
			case foodRune:
				layout.Food = append(layout.Food, p)
			case capsuleRune:
				layout.Capsules = append(layout.Capsules, p)
			case pacmanRune:
				if pacmanFound {
					return nil, fmt.Errorf("%w: %s has more than one pacman", ErrInvalidLayout, name)
				}
				pacmanFound = true
				layout.PacmanStart = p
			case ghostRune:
				layout.GhostStarts = append(layout.GhostStarts, p)
			case ' ':
			default:
				return nil, fmt.Errorf("%w: %s has unexpected %q at row %d column %d", ErrInvalidLayout, name, cell, row, x)
			}
		}
	}
	if !pacmanFound {
		return nil, fmt.Errorf("%w: %s has no pacman start", ErrInvalidLayout, name)
	}

	sortPositions(layout.Food)
	sortPositions(layout.Capsules)
	return layout, nil
}

// LoadLayout resolves a built-in layout name first and falls back to a file path.
func LoadLayout(nameOrPath string) (*Layout, error) {
	if data, err := builtinLayouts.ReadFile(path.Join("layouts", nameOrPath+".lay")); err == nil {
		return ParseLayout(nameOrPath, strings.NewReader(string(data)))
	}

	file, err := os.Open(nameOrPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLayout, nameOrPath)
		}
		return nil, fmt.Errorf("failed to open layout %s: %w", nameOrPath, err)
	}
	defer file.Close()

	return ParseLayout(nameOrPath, file)
}

// LayoutNames lists the embedded layouts.
func LayoutNames() []string {
	entries, err := builtinLayouts.ReadDir("layouts")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".lay"))
	}
	sort.Strings(names)
	return names
}

// IsWall treats everything outside the grid as wall.
func (l *Layout) IsWall(p agent.Position) bool {
	if p.X < 0 || p.Y < 0 || p.X >= l.Width || p.Y >= l.Height {
		return true
	}
	return l.walls[p.X][p.Y]
}

// Walls lists every wall cell in x-major order.
func (l *Layout) Walls() []agent.Position {
	var walls []agent.Position
	for x := 0; x < l.Width; x++ {
		for y := 0; y < l.Height; y++ {
			if l.walls[x][y] {
				walls = append(walls, agent.Position{X: x, Y: y})
			}
		}
	}
	return walls
}

// Corners returns the corners of the maze's bounding box.
func (l *Layout) Corners() []agent.Position {
	maxX, maxY := l.Width-1, l.Height-1
	return []agent.Position{
		{X: 0, Y: 0},
		{X: maxX, Y: 0},
		{X: 0, Y: maxY},
		{X: maxX, Y: maxY},
	}
}

func sortPositions(positions []agent.Position) {
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].X != positions[j].X {
			return positions[i].X < positions[j].X
		}
		return positions[i].Y < positions[j].Y
	})
}
