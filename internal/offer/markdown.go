package offer

import (
	"fmt"
	"strings"
)

// Block is a markdown table found in a text body. Start and End are byte offsets
// into the scanned text; End includes the last row's line terminator.
type Block struct {
	Start int
	End   int
	Table NormalizedTable
}

// hotelNameHeader is the column whose empty cells receive a "Hotel N" placeholder.
const hotelNameHeader = "hotel name"

type scanState int

const (
	stateSeeking   scanState = iota // looking for a header row
	stateHeader                     // header seen, expecting a separator
	stateSeparator                  // separator seen, expecting the first data row
	stateRows                       // consuming data rows
)

type line struct {
	start int
	end   int // exclusive, includes the terminator
	body  string
}

// Transcode finds every markdown table block in text, left to right and
// non-overlapping, and converts each into a NormalizedTable.
func Transcode(text string) []Block {
	var (
		blocks []Block
		state  = stateSeeking
		start  int
		end    int
		header []string
		rows   [][]string
	)

	flush := func() {
		blocks = append(blocks, Block{Start: start, End: end, Table: normalize(header, rows)})
		header, rows = nil, nil
	}

	for _, ln := range splitLines(text) {
		body := strings.TrimSpace(ln.body)

		switch state {
		case stateSeeking:
			if cells, ok := headerCells(body); ok {
				state, start, header = stateHeader, ln.start, cells
			}
		case stateHeader:
			if isSeparator(body) {
				state = stateSeparator
				continue
			}
			// Adjacent table-like lines: the newest candidate becomes the header.
			if cells, ok := headerCells(body); ok {
				start, header = ln.start, cells
				continue
			}
			state, header = stateSeeking, nil
		case stateSeparator:
			if isRow(body) {
				rows = append(rows, splitCells(body))
				state, end = stateRows, ln.end
				continue
			}
			state, header = stateSeeking, nil
		case stateRows:
			if isRow(body) {
				rows = append(rows, splitCells(body))
				end = ln.end
				continue
			}
			flush()
			state = stateSeeking
		}
	}
	if state == stateRows {
		flush()
	}
	return blocks
}

// normalize fits every row to the header width and applies the hotel-name
// placeholder. Rows without a populated cell are dropped and do not advance
// the counter.
func normalize(headers []string, raw [][]string) NormalizedTable {
	var nameCols []int
	for i, h := range headers {
		if strings.EqualFold(h, hotelNameHeader) {
			nameCols = append(nameCols, i)
		}
	}

	rows := make([][]string, 0, len(raw))
	for _, cells := range raw {
		if blank(cells) {
			continue
		}
		row := fitRow(cells, len(headers))
		n := len(rows) + 1
		for _, col := range nameCols {
			if row[col] == "" {
				row[col] = fmt.Sprintf("Hotel %d", n)
			}
		}
		rows = append(rows, row)
	}
	return NormalizedTable{Headers: headers, Rows: rows}
}

func blank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

// fitRow pads short rows with empty cells and folds surplus cells into the
// last column so no content is lost.
func fitRow(cells []string, width int) []string {
	row := make([]string, width)
	if len(cells) <= width {
		copy(row, cells)
		return row
	}
	copy(row, cells[:width-1])
	row[width-1] = strings.Join(cells[width-1:], " | ")
	return row
}

func headerCells(body string) ([]string, bool) {
	if !isRow(body) {
		return nil, false
	}
	cells := splitCells(body)
	return cells, len(cells) > 0
}

// isRow reports whether a trimmed line starts and ends with an unescaped pipe.
func isRow(body string) bool {
	return len(body) >= 2 &&
		body[0] == '|' &&
		body[len(body)-1] == '|' &&
		!strings.HasSuffix(body, `\|`)
}

// isSeparator reports whether a trimmed line holds only pipes, dashes and spaces.
func isSeparator(body string) bool {
	if !strings.Contains(body, "|") || !strings.Contains(body, "-") {
		return false
	}
	for _, r := range body {
		if r != '|' && r != '-' && r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}

// splitCells splits a row on unescaped pipes, drops the empty boundary cells
// and trims the rest. `\|` yields a literal pipe inside a cell.
func splitCells(body string) []string {
	var (
		parts []string
		cur   strings.Builder
	)
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) && body[i+1] == '|' {
			cur.WriteByte('|')
			i++
			continue
		}
		if c == '|' {
			parts = append(parts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	parts = append(parts, cur.String())

	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// splitLines splits text into lines, keeping byte offsets. The body excludes
// the "\n" or "\r\n" terminator.
func splitLines(text string) []line {
	var lines []line
	for pos := 0; pos < len(text); {
		nl := strings.IndexByte(text[pos:], '\n')
		if nl == -1 {
			lines = append(lines, line{start: pos, end: len(text), body: text[pos:]})
			break
		}
		end := pos + nl + 1
		lines = append(lines, line{start: pos, end: end, body: strings.TrimSuffix(text[pos:end-1], "\r")})
		pos = end
	}
	return lines
}
