// Package report turns the stored registrations into the dashboard's
// aggregate view: per-course counts and a bar chart of them.
//
// It is a pure read-side package — it takes a slice of records and
// returns values; it never touches storage or HTTP.
package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/coursedesk/registrations-api/internal/types"
)

// palette is the fixed set of bar colors. With more distinct courses
// than colors, the palette cycles.
var palette = []drawing.Color{
	drawing.ColorFromHex("003366"),
	drawing.ColorFromHex("FF9933"),
	drawing.ColorFromHex("0070c0"),
	drawing.ColorFromHex("b74c00"),
}

// CourseCount is one row of the frequency distribution.
type CourseCount struct {
	Course string
	Count  int
}

// CountByCourse computes how many registrations exist per course,
// ordered most common first. Courses with equal counts keep the order
// in which they first appeared, so repeated calls over the same data
// are deterministic. Records with an empty course field are skipped.
func CountByCourse(recs []types.Registration) []CourseCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, rec := range recs {
		if rec.Course == "" {
			continue
		}
		if _, seen := counts[rec.Course]; !seen {
			order = append(order, rec.Course)
		}
		counts[rec.Course]++
	}

	result := make([]CourseCount, 0, len(order))
	for _, course := range order {
		result = append(result, CourseCount{Course: course, Count: counts[course]})
	}

	// SliceStable keeps the first-seen order among equal counts.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	return result
}

// BuildChart renders the per-course distribution as a PNG bar chart and
// returns it as a data: URI suitable for an <img src> attribute.
//
// When there is nothing to chart — no records, or no record carries a
// course value — it returns "" with a nil error; the caller is expected
// to show a fallback message instead of an image.
func BuildChart(recs []types.Registration) (string, error) {
	counts := CountByCourse(recs)
	if len(counts) == 0 {
		return "", nil
	}

	bars := make([]chart.Value, 0, len(counts))
	for i, c := range counts {
		color := palette[i%len(palette)]
		bars = append(bars, chart.Value{
			Label: c.Course,
			Value: float64(c.Count),
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: color,
			},
		})
	}

	graph := chart.BarChart{
		Title:    "Live Registration Distribution by Course",
		Width:    900,
		Height:   500,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		XAxis: chart.Style{},
		YAxis: chart.YAxis{
			ValueFormatter: chart.IntValueFormatter,
			// Pin the range: go-chart derives it from the bar values
			// otherwise and refuses to render when min == max, which
			// is exactly the all-counts-equal case (e.g. one
			// registration per course). Bars also read better
			// anchored at zero. counts is sorted descending, so the
			// first entry is the maximum.
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: float64(counts[0].Count),
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return "", fmt.Errorf("BuildChart: render: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
