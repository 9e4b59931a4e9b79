package terminal

import (
	"fmt"
	"math"
	"strings"
	"time"

	"weatherview.app/internal/core/forecasts"
)

const (
	dayLayout   = "Mon 02 Jan"
	rangeLayout = "02/01 15:04"
)

var sparkTicks = []rune("▁▂▃▄▅▆▇█")

// RenderChart prints a temperature sparkline followed by one line per day with its
// minimum, maximum, 9am and 3pm temperatures.
func RenderChart(c forecasts.Chart, loc *time.Location, width int) string {
	if len(c.Temps) == 0 {
		return mutedStyle.Render("No temperatures to chart") + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s - %s\n", titleStyle.Render("Temperature"),
		c.Start.In(loc).Format(rangeLayout), c.End.In(loc).Format(rangeLayout))

	temps := make([]float64, len(c.Temps))
	for i, s := range c.Temps {
		temps[i] = s.Temp
	}
	b.WriteString(sparkline(temps, width))
	b.WriteString("\n")

	nine := byDay(c.NineAM, loc)
	three := byDay(c.ThreePM, loc)
	for i := range c.Min {
		day := c.Min[i].Time.In(loc).Format(dayLayout)
		line := fmt.Sprintf("%s  min %5.1f  max %5.1f", day, c.Min[i].Temp, c.Max[i].Temp)
		if t, ok := nine[day]; ok {
			line += fmt.Sprintf("  9am %5.1f", t)
		}
		if t, ok := three[day]; ok {
			line += fmt.Sprintf("  3pm %5.1f", t)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func byDay(samples []forecasts.Sample, loc *time.Location) map[string]float64 {
	out := make(map[string]float64, len(samples))
	for _, s := range samples {
		day := s.Time.In(loc).Format(dayLayout)
		if _, seen := out[day]; !seen {
			out[day] = s.Temp
		}
	}
	return out
}

// sparkline scales values onto block characters, sampling down to at most width points
func sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}
	if width > 0 && len(values) > width {
		sampled := make([]float64, width)
		for i := range sampled {
			sampled[i] = values[i*len(values)/width]
		}
		values = sampled
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var b strings.Builder
	for _, v := range values {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparkTicks)-1))
		}
		b.WriteRune(sparkTicks[idx])
	}
	return b.String()
}
