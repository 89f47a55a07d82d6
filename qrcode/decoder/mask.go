package decoder

import "fmt"

// MaskPattern selects one of the eight data masks, 0 to 7.
type MaskPattern int

// maskFuncs take x as the column and y as the row.
var maskFuncs = [8]func(x, y int) bool{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (y/2+x/3)%2 == 0 },
	func(x, y int) bool { return (x*y)%6 == 0 },
	func(x, y int) bool { return (x*y)%6 < 3 },
	func(x, y int) bool { return (x+y+(x*y)%3)%2 == 0 },
}

// NewMaskPattern validates p.
func NewMaskPattern(p int) (MaskPattern, error) {
	if p < 0 || p > 7 {
		return 0, fmt.Errorf("%w: %d", errInvalidMaskPattern, p)
	}
	return MaskPattern(p), nil
}

// IsMasked reports whether the module at column x, row y is inverted by
// this pattern.
func (m MaskPattern) IsMasked(x, y int) bool {
	return maskFuncs[m](x, y)
}

func (m MaskPattern) String() string {
	return fmt.Sprintf("%03b", int(m))
}

// Penalty weights used when choosing a mask.
const (
	penaltyN1 = 3
	penaltyN2 = 3
	penaltyN3 = 40
	penaltyN4 = 10
)

// Penalty scores a fully masked grid, grid[y][x] being true for dark
// modules. Lower is better.
func Penalty(grid [][]bool) int {
	return PenaltyRule1(grid) + PenaltyRule2(grid) + PenaltyRule3(grid) + PenaltyRule4(grid)
}

// PenaltyRule1 penalizes runs of five or more same-colored modules in a
// row or column.
func PenaltyRule1(grid [][]bool) int {
	penalty := 0
	n := len(grid)
	for i := 0; i < n; i++ {
		penalty += runPenalty(n, func(k int) bool { return grid[i][k] })
		penalty += runPenalty(n, func(k int) bool { return grid[k][i] })
	}
	return penalty
}

func runPenalty(n int, at func(int) bool) int {
	penalty, run := 0, 0
	for k := 0; k < n; k++ {
		if k > 0 && at(k) == at(k-1) {
			run++
			continue
		}
		if run >= 5 {
			penalty += penaltyN1 + run - 5
		}
		run = 1
	}
	if run >= 5 {
		penalty += penaltyN1 + run - 5
	}
	return penalty
}

// PenaltyRule2 penalizes each 2x2 block of one color.
func PenaltyRule2(grid [][]bool) int {
	count := 0
	for y := 0; y+1 < len(grid); y++ {
		for x := 0; x+1 < len(grid[y]); x++ {
			v := grid[y][x]
			if v == grid[y][x+1] && v == grid[y+1][x] && v == grid[y+1][x+1] {
				count++
			}
		}
	}
	return penaltyN2 * count
}

// PenaltyRule3 penalizes 1:1:3:1:1 dark:light:dark:light:dark runs that
// have four light modules on either side, in rows and columns.
func PenaltyRule3(grid [][]bool) int {
	n := len(grid)
	count := 0
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			row := func(k int) bool { return grid[y][k] }
			col := func(k int) bool { return grid[k][x] }
			if finderLike(row, x, n) {
				count++
			}
			if finderLike(col, y, n) {
				count++
			}
		}
	}
	return penaltyN3 * count
}

func finderLike(at func(int) bool, k, n int) bool {
	if k+6 >= n {
		return false
	}
	if !at(k) || at(k+1) || !at(k+2) || !at(k+3) || !at(k+4) || at(k+5) || !at(k+6) {
		return false
	}
	return allLight(at, k-4, k, n) || allLight(at, k+7, k+11, n)
}

func allLight(at func(int) bool, from, to, n int) bool {
	if from < 0 || to > n {
		return false
	}
	for k := from; k < to; k++ {
		if at(k) {
			return false
		}
	}
	return true
}

// PenaltyRule4 penalizes deviation of the dark module ratio from 50%, 10
// points per 5% step.
func PenaltyRule4(grid [][]bool) int {
	dark, total := 0, 0
	for _, row := range grid {
		for _, v := range row {
			if v {
				dark++
			}
		}
		total += len(row)
	}
	if total == 0 {
		return 0
	}
	diff := dark*2 - total
	if diff < 0 {
		diff = -diff
	}
	return diff * 10 / total * penaltyN4
}
