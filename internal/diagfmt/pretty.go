package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"trueup/internal/diag"
	"trueup/internal/source"
)

// Pretty renders formatting findings (SevError) as two-row blocks.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
//
// Для каждой находки печатает:
//
//	<path>:<line>   <текст строки>
//	                ---^^^^-------
//
// Ряд 2 выровнен под рядом 1: отступ ровно в ширину "<path>:<line>" плюс
// HeaderPad, дальше по одному знаку на колонку строки — '^' внутри
// [col, col+len), '-' снаружи, на всю длину строки. Широкие руны занимают
// столько знаков, сколько терминальных ячеек (go-runewidth), так что
// подчёркивание не съезжает на CJK.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	headerColor := color.New(color.Bold)
	caretColor := color.New(color.FgRed)

	for _, d := range bag.Items() {
		if d.Severity != diag.SevError {
			continue
		}

		file := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		lineText := file.GetLine(start.Line)

		header := fmt.Sprintf("%s:%d", file.FormatPath(opts.PathMode.formatPathMode(), fs.BaseDir()), start.Line)
		indent := runewidth.StringWidth(header) + opts.pad()

		underline := buildUnderline(lineText, start.Col, d.Primary.Len())

		if opts.Color {
			fmt.Fprintf(w, "%s%s%s\n", headerColor.Sprint(header), strings.Repeat(" ", opts.pad()), lineText)
			fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", indent), colorizeUnderline(underline, caretColor))
		} else {
			fmt.Fprintf(w, "%s%s%s\n", header, strings.Repeat(" ", opts.pad()), lineText)
			fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", indent), underline)
		}
	}
}

// Warnings renders report-level observations (SevWarning) one per line.
// Эти строки идут отдельным writer'ом (stderr): stdout несёт только блоки.
func Warnings(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	label := "warning:"
	if opts.Color {
		label = color.New(color.FgYellow).Sprint(label)
	}

	for _, d := range bag.Items() {
		if d.Severity != diag.SevWarning {
			continue
		}
		file := fs.Get(d.Primary.File)
		path := file.FormatPath(opts.PathMode.formatPathMode(), fs.BaseDir())
		fmt.Fprintf(w, "%s: %s %s\n", path, label, d.Message)
	}
}

// buildUnderline строит ряд 2 без отступа: по ячейке на каждую руну строки,
// '^' для байтов внутри [col, col+length), '-' для остальных. Замена длиннее
// строки обрезается сама собой; length == 0 даёт ряд из одних дефисов.
func buildUnderline(lineText string, col, length uint32) string {
	var b strings.Builder
	end := uint64(col) + uint64(length)

	for bi, r := range lineText {
		cells := runewidth.RuneWidth(r)
		if cells < 1 {
			cells = 1
		}
		marker := byte('-')
		if uint64(bi) >= uint64(col) && uint64(bi) < end {
			marker = '^'
		}
		for i := 0; i < cells; i++ {
			b.WriteByte(marker)
		}
	}
	return b.String()
}

// colorizeUnderline красит каретные серии, не трогая дефисы.
// Ширина ряда от этого не меняется: ANSI-коды ячеек не занимают.
func colorizeUnderline(underline string, caret *color.Color) string {
	var b strings.Builder
	i := 0
	for i < len(underline) {
		j := i
		for j < len(underline) && underline[j] == underline[i] {
			j++
		}
		run := underline[i:j]
		if underline[i] == '^' {
			b.WriteString(caret.Sprint(run))
		} else {
			b.WriteString(run)
		}
		i = j
	}
	return b.String()
}
