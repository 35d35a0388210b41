package main

import (
	"github.com/DeafMist/guestpost-report/internal/models"
)

const (
	chartHeight     = 260
	chartMinWidth   = 320
	chartMarginLeft = 40
	chartMarginTop  = 20
	chartAxisSpace  = 80
	chartSlotWidth  = 48
	chartBarWidth   = 32
)

type bar struct {
	X, Y, W, H     int
	Label          string
	Count          int
	LabelX, LabelY int
}

// barChart is the layout of an SVG bar chart, one bar per publish date.
type barChart struct {
	Width    int
	Height   int
	BaseY    int
	MaxCount int
	Bars     []bar
}

func (c barChart) Empty() bool {
	return len(c.Bars) == 0
}

func newBarChart(counts []models.DateCount) barChart {
	chart := barChart{
		Width:  max(chartMinWidth, chartMarginLeft+len(counts)*chartSlotWidth+chartMarginTop),
		Height: chartHeight,
		BaseY:  chartHeight - chartAxisSpace,
	}
	for _, c := range counts {
		chart.MaxCount = max(chart.MaxCount, c.Count)
	}
	if chart.MaxCount == 0 {
		return chart
	}

	plot := chart.BaseY - chartMarginTop
	for i, c := range counts {
		h := c.Count * plot / chart.MaxCount
		x := chartMarginLeft + i*chartSlotWidth + (chartSlotWidth-chartBarWidth)/2
		chart.Bars = append(chart.Bars, bar{
			X:      x,
			Y:      chart.BaseY - h,
			W:      chartBarWidth,
			H:      h,
			Label:  c.Date.Format(dateLayout),
			Count:  c.Count,
			LabelX: x + chartBarWidth/2,
			LabelY: chart.BaseY + 14,
		})
	}
	return chart
}
