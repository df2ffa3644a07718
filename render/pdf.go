//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package render

import (
	"bytes"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"trpc.group/trpc-go/trpc-agent-graph/graph"
)

// pdfEpoch is stamped as the creation date so identical graphs produce
// identical documents.
var pdfEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

const (
	pdfImageName  = "graph"
	pdfFont       = "Helvetica"
	pdfLineHeight = 6.0
)

// pdfColumns are the agent table column widths in mm; they fill an A4
// landscape page with 10mm margins.
var pdfColumns = []float64{60, 80, 137}

// writePDF lays out a landscape A4 document: the diagram on page one and an
// agent table on page two.
func (r *Renderer) writePDF(g *graph.Graph, png []byte, w io.Writer) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetCatalogSort(true)
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(r.opts.title, true)

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, 10, tr(r.opts.title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	imgOpts := fpdf.ImageOptions{ImageType: "PNG"}
	info := pdf.RegisterImageOptionsReader(pdfImageName, imgOpts, bytes.NewReader(png))
	if pdf.Err() {
		return pdf.Error()
	}
	pageW, pageH := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	maxW := pageW - left - right
	maxH := pageH - pdf.GetY() - bottom
	imgW, imgH := info.Width(), info.Height()
	scale := 1.0
	if imgW > maxW {
		scale = maxW / imgW
	}
	if imgH*scale > maxH {
		scale = maxH / imgH
	}
	x := left + (maxW-imgW*scale)/2
	pdf.ImageOptions(pdfImageName, x, pdf.GetY(), imgW*scale, imgH*scale, false, imgOpts, 0, "")

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 12)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range []string{"Agent", "Hands off to", "Capabilities"} {
		pdf.CellFormat(pdfColumns[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFont, "", 10)
	for _, row := range r.tableRows(g) {
		r.pdfRow(pdf, tr, row)
	}

	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.Output(w)
}

// pdfRow draws one table row, wrapping each cell and sizing the row to the
// tallest cell.
func (r *Renderer) pdfRow(pdf *fpdf.Fpdf, tr func(string) string, row tableRow) {
	cells := []string{row.agent, joinNames(row.targets), joinNames(row.capabilities)}
	if row.root {
		cells[0] += " (root)"
	}
	lines := 1
	wrapped := make([][]string, len(cells))
	for i, c := range cells {
		wrapped[i] = pdf.SplitText(tr(c), pdfColumns[i]-2)
		if n := len(wrapped[i]); n > lines {
			lines = n
		}
	}
	height := float64(lines) * pdfLineHeight

	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+height > pageH-bottom {
		pdf.AddPage()
	}

	x, y := pdf.GetXY()
	for i, text := range wrapped {
		pdf.Rect(x, y, pdfColumns[i], height, "D")
		for j, line := range text {
			pdf.SetXY(x+1, y+float64(j)*pdfLineHeight)
			pdf.CellFormat(pdfColumns[i]-2, pdfLineHeight, line, "", 0, "L", false, 0, "")
		}
		x += pdfColumns[i]
	}
	left, _, _, _ := pdf.GetMargins()
	pdf.SetXY(left, y+height)
}
