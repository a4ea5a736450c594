package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

// tableTimeFormat is how timestamps are rendered in list output
const tableTimeFormat = "2006-01-02 15:04:05"

type TableRowDataInsertor func(*Table) error

type NewTableOpts struct {
	Headers     []string
	Rows        TableRowDataInsertor
	IsFullWidth bool
}

func NewTable(opts NewTableOpts) *Table {
	table := &Table{
		Rows:        opts.Rows,
		isFullWidth: opts.IsFullWidth,
	}
	return table.Init(opts.Headers)
}

type Table struct {
	data  bytes.Buffer
	table *tablewriter.Table

	Rows TableRowDataInsertor

	isFullWidth bool
}

func (t *Table) Init(headers []string) *Table {
	t.table = tablewriter.NewWriter(&t.data)
	t.table.Options(tablewriter.WithHeaderAlignment(tw.AlignLeft))
	t.table.Configure(func(cfg *tablewriter.Config) {
		width, _, _ := term.GetSize(int(os.Stdout.Fd()))
		if t.isFullWidth {
			cfg.Widths.Global = width
		} else {
			cfg.MaxWidth = width
		}
		cfg.Row.Padding.Global.Top = " "
		cfg.Row.Padding.Global.Bottom = " "
	})
	t.table.Header(headers)
	return t
}

func (t *Table) Render() *Table {
	t.Rows(t)
	return t
}

// NewRow appends a row, converting each value into its display form.
// Unhandled types and nils render as a dash
func (t *Table) NewRow(values ...any) error {
	row := []string{}
	for _, value := range values {
		valueAsString := "-"
		switch v := value.(type) {
		case int, int8, int16, int32, int64, float32, float64:
			valueAsString = fmt.Sprintf("%v", v)
		case bool:
			valueAsString = "✅"
			if !v {
				valueAsString = "❌"
			}
		case string:
			valueAsString = v
		case []string:
			valueAsString = fmt.Sprintf(`["%s"]`, strings.Join(v, `", "`))
		case []byte:
			valueAsString = string(v)
		case time.Time:
			valueAsString = v.Local().Format(tableTimeFormat)
		case *time.Time:
			if v != nil {
				valueAsString = v.Local().Format(tableTimeFormat)
			}
		}
		row = append(row, valueAsString)
	}
	return t.table.Append(row)
}

func (t *Table) GetString() string {
	t.table.Render()
	return t.data.String()
}
