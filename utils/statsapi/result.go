package statsapi

// Result is the decoded output of one analysis run.
type Result struct {
	Analysis       string             `json:"analysis"`
	Metrics        map[string]float64 `json:"metrics"`
	Tables         []Table            `json:"tables"`
	Interpretation string             `json:"interpretation"`
	Plots          []Plot             `json:"plots"`
}

// Table is a titled grid of result values, already formatted server-side.
type Table struct {
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Plot is a server-rendered figure embedded as base64 PNG.
type Plot struct {
	Title     string `json:"title"`
	PNGBase64 string `json:"png_base64"`
}

// Metric returns a named metric and whether it is present.
func (r *Result) Metric(name string) (float64, bool) {
	if r == nil || r.Metrics == nil {
		return 0, false
	}
	v, ok := r.Metrics[name]
	return v, ok
}
