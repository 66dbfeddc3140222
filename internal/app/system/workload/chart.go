package workload

import (
	"encoding/json"
	"fmt"
)

// chartDataset is one stacked series (one learning type).
type chartDataset struct {
	Label           string `json:"label"`
	Data            []int  `json:"data"`
	BackgroundColor string `json:"backgroundColor"`
	Hidden          bool   `json:"hidden,omitempty"`
}

type chartAxis struct {
	Stacked bool           `json:"stacked"`
	Min     *int           `json:"min,omitempty"`
	Max     *int           `json:"max,omitempty"`
	Ticks   map[string]any `json:"ticks,omitempty"`
	Title   map[string]any `json:"title,omitempty"`
}

type chartConfig struct {
	Type string `json:"type"`
	Data struct {
		Labels   []string       `json:"labels"`
		Datasets []chartDataset `json:"datasets"`
	} `json:"data"`
	Options struct {
		Responsive          bool                 `json:"responsive"`
		MaintainAspectRatio bool                 `json:"maintainAspectRatio"`
		Scales              map[string]chartAxis `json:"scales"`
		Plugins             map[string]any       `json:"plugins"`
	} `json:"options"`
}

// ChartConfig returns the Chart.js configuration for a stacked bar chart of
// minutes per week per learning type. Unused learning types are kept as
// hidden, greyed datasets so the legend still lists them.
func ChartConfig(d Dashboard) ([]byte, error) {
	var cfg chartConfig
	cfg.Type = "bar"

	cfg.Data.Labels = make([]string, 0, len(d.Weeks))
	for _, w := range d.Weeks {
		cfg.Data.Labels = append(cfg.Data.Labels, fmt.Sprintf("Week %d", w.Week))
	}

	for _, lt := range d.AllLearningTypes {
		ds := chartDataset{
			Label:           lt.Name,
			Data:            make([]int, 0, len(d.Weeks)),
			BackgroundColor: lt.Color,
			Hidden:          !lt.Used,
		}
		for _, w := range d.Weeks {
			ds.Data = append(ds.Data, w.MinutesFor(lt.Key))
		}
		cfg.Data.Datasets = append(cfg.Data.Datasets, ds)
	}

	zero, yMax := 0, d.YAxisMax
	cfg.Options.Responsive = true
	cfg.Options.Scales = map[string]chartAxis{
		"x": {Stacked: true},
		"y": {
			Stacked: true,
			Min:     &zero,
			Max:     &yMax,
			Ticks:   map[string]any{"stepSize": 60},
			Title:   map[string]any{"display": true, "text": "Minutes"},
		},
	}
	cfg.Options.Plugins = map[string]any{
		"legend": map[string]any{"position": "bottom"},
	}

	return json.Marshal(cfg)
}
