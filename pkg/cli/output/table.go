package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Table 简单表格输出
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable 创建表格
func NewTable(headers []string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		widths:  widths,
	}
}

// AddRow 添加行
func (t *Table) AddRow(row []string) {
	// 更新列宽
	for i, cell := range row {
		if n := utf8.RuneCountInString(cell); i < len(t.widths) && n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
}

// Render 渲染表格到标准输出
func (t *Table) Render() {
	t.RenderTo(os.Stdout)
}

// RenderTo 渲染表格到指定Writer
func (t *Table) RenderTo(w io.Writer) {
	// 打印表头
	headerColor := color.New(color.FgCyan, color.Bold)
	for i, h := range t.headers {
		headerColor.Fprint(w, pad(h, t.widths[i])+"  ")
	}
	fmt.Fprintln(w)

	// 打印分隔线
	for i := range t.headers {
		fmt.Fprint(w, strings.Repeat("-", t.widths[i])+"  ")
	}
	fmt.Fprintln(w)

	// 打印数据行
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(t.widths) {
				fmt.Fprint(w, pad(cell, t.widths[i])+"  ")
			}
		}
		fmt.Fprintln(w)
	}
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
