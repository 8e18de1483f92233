// Package report renders a scenario.Summary for people: PNG charts drawn
// with gonum/plot and a single-page HTML dashboard drawn with go-echarts.
//
// Each call to Writer.Write creates a fresh run directory
//
//	<output_dir>/<scenario name>/<YYYYMMDD_HHMMSS>_<run id>/
//
// so repeated renders of the same scenario never overwrite each other.
package report
