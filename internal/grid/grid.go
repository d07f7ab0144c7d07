package grid

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Ravenry/kacamerah/common/utils"
	"github.com/Ravenry/kacamerah/internal/table"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
)

// Column 表格列
type Column struct {
	Key    string
	Header string
	Pin    table.Pin
}

// Layout 计算可见列：左固定列在前，右固定列在后，同组内保持声明顺序
func Layout(columns []string, state table.State, exclude ...string) []Column {
	var left, middle, right []Column
	for _, key := range columns {
		if !state.Visible(key) || utils.SliceContains(exclude, key) {
			continue
		}
		col := Column{Key: key, Header: key, Pin: state.ColumnPinning[key]}
		switch col.Pin {
		case table.PinLeft:
			left = append(left, col)
		case table.PinRight:
			right = append(right, col)
		default:
			col.Pin = table.PinNone
			middle = append(middle, col)
		}
	}
	out := make([]Column, 0, len(left)+len(middle)+len(right))
	out = append(out, left...)
	out = append(out, middle...)
	return append(out, right...)
}

// Rows 把记录转换为以 JSON 字段名为键的行
func Rows[T any](records []T) ([]map[string]any, error) {
	rows := make([]map[string]any, 0, len(records))
	for _, r := range records {
		m, err := utils.ToMap(r)
		if err != nil {
			return nil, err
		}
		rows = append(rows, m)
	}
	return rows, nil
}

// Lookup 按点路径取值，经过数组时收集每个元素上的值
func Lookup(row map[string]any, path string) any {
	return lookup(row, strings.Split(path, "."))
}

func lookup(v any, parts []string) any {
	if len(parts) == 0 {
		return v
	}
	switch node := v.(type) {
	case map[string]any:
		next, ok := node[parts[0]]
		if !ok {
			return nil
		}
		return lookup(next, parts[1:])
	case []any:
		var out []any
		for _, elem := range node {
			if got := lookup(elem, parts); got != nil {
				out = append(out, got)
			}
		}
		return out
	}
	return nil
}

// Cell 格式化单元格，数组以 ", " 连接
func Cell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(val))
		for _, elem := range val {
			parts = append(parts, Cell(elem))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		s, err := utils.MarshalString(val)
		if err != nil {
			return ""
		}
		return s
	}
	return fmt.Sprint(v)
}

// Matrix 生成表头与单元格文本
func Matrix(cols []Column, rows []map[string]any) ([]string, [][]string) {
	headers := make([]string, 0, len(cols))
	for _, c := range cols {
		headers = append(headers, c.Header)
	}
	body := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, 0, len(cols))
		for _, c := range cols {
			line = append(line, Cell(Lookup(row, c.Key)))
		}
		body = append(body, line)
	}
	return headers, body
}

// WriteCSV 以 CSV 格式写出
func WriteCSV(w io.Writer, cols []Column, rows []map[string]any) error {
	headers, body := Matrix(cols, rows)
	writer := csv.NewWriter(w)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writer.WriteAll(body); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}

var (
	colorBorder = lipgloss.Color("#585b70")
	colorHeader = lipgloss.Color("#89b4fa")
	colorPinned = lipgloss.Color("#f9e2af")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorHeader).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	pinnedStyle = cellStyle.Foreground(colorPinned)
)

// Render 渲染终端表格，固定列高亮显示
func Render(cols []Column, rows []map[string]any) string {
	headers, body := Matrix(cols, rows)
	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return headerStyle
			}
			if col < len(cols) && cols[col].Pin != table.PinNone {
				return pinnedStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(body...)
	return t.Render()
}
