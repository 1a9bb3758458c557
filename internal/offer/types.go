package offer

import "strings"

// Placeholder is shown for a flight or hotel field the backend did not supply.
const Placeholder = "-"

// FlightInfo is the flight segment of a structured booking result.
type FlightInfo struct {
	From  Field `json:"from"`
	To    Field `json:"to"`
	Date  Field `json:"date"`
	Price Field `json:"price"`
}

// HotelInfo is the hotel segment of a structured booking result.
type HotelInfo struct {
	Name   Field `json:"name"`
	Price  Field `json:"price"`
	Rating Field `json:"rating"`
}

// Structured is a booking result that exposes typed flight and/or hotel segments.
type Structured struct {
	Flight *FlightInfo `json:"flight,omitempty"`
	Hotel  *HotelInfo  `json:"hotel,omitempty"`
}

// NormalizedTable is a markdown table after cell extraction.
// Every row has exactly len(Headers) cells.
type NormalizedTable struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Markdown serializes the table back to a pipe table.
func (t NormalizedTable) Markdown() string {
	var b strings.Builder
	writeRow(&b, t.Headers)
	sep := make([]string, len(t.Headers))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&b, sep)
	for _, row := range t.Rows {
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(strings.ReplaceAll(c, "|", `\|`))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

// NodeKind identifies the variant held by a Node.
type NodeKind int

const (
	// NodeTitledList is a title followed by key/value pairs.
	NodeTitledList NodeKind = iota
	// NodeTable is a normalized markdown table.
	NodeTable
	// NodeText is prose emitted with its line breaks intact.
	NodeText
)

func (k NodeKind) String() string {
	switch k {
	case NodeTitledList:
		return "titled_list"
	case NodeTable:
		return "table"
	case NodeText:
		return "text"
	default:
		return "unknown"
	}
}

// Item is one key/value line of a titled list.
type Item struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Node is one element of a DisplayTree. Only the fields matching Kind are set.
type Node struct {
	Kind  NodeKind         `json:"kind"`
	Title string           `json:"title,omitempty"`
	Items []Item           `json:"items,omitempty"`
	Table *NormalizedTable `json:"table,omitempty"`
	Text  string           `json:"text,omitempty"`
}

// TitledList builds a titled list node.
func TitledList(title string, items ...Item) Node {
	return Node{Kind: NodeTitledList, Title: title, Items: items}
}

// Table builds a table node.
func Table(t NormalizedTable) Node {
	return Node{Kind: NodeTable, Table: &t}
}

// TextBlock builds a text node.
func TextBlock(text string) Node {
	return Node{Kind: NodeText, Text: text}
}

// DisplayTree is the renderable form of one booking result.
type DisplayTree []Node
