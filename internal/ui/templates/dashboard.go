package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const dashboardPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>Coffee Shop Sales</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@latest/bundles/datastar.js"></script>
<style>
body { font-family: system-ui, sans-serif; margin: 0; background: #fdf5e6; color: #3d2b1f; }
header { background: #3d2b1f; color: #fdf5e6; padding: 1rem 2rem; }
main { padding: 1.5rem 2rem; display: grid; gap: 1.5rem; }
.kpi-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 1rem; }
.kpi-card { background: #fff; border-radius: 10px; padding: 1rem; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
.kpi-label { display: block; font-size: 0.8rem; color: #6f4e37; }
.kpi-delta { margin-left: 0.5rem; font-size: 0.8rem; color: #59270e; }
.modern-table { width: 100%; border-collapse: collapse; background: #fff; }
.modern-table th, .modern-table td { padding: 0.5rem 0.75rem; text-align: left; border-bottom: 1px solid #e8d4bb; }
.category-badge { background: #c3a689; border-radius: 6px; padding: 0.1rem 0.5rem; font-size: 0.8rem; }
</style>
</head>
<body data-signals="{dailyData: [], categoryData: [], storeData: [], heatmapData: {}}" data-on-load="@get('/sse/refresh-all')">
<header><h1>Coffee Shop Sales</h1></header>
<main>
<section id="kpi-cards" class="kpi-grid"></section>
<section id="daily-content">Loading daily trend…</section>
<section id="categories-content">Loading categories…</section>
<section id="heatmap-content">Loading heatmap…</section>
<section id="products-content">Loading top products…</section>
</main>
</body>
</html>`

// Dashboard is the static page shell; the data inside it arrives over the
// SSE endpoints.
func Dashboard() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, dashboardPage)
		return err
	})
}
