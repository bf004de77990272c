// Package analysis summarizes an anomaly series.
//
//   - [Summarize]: mean, spread, extremes and the linear warming trend
//   - [AnnualMeans]: calendar-year averages
//   - [Climatology]: mean anomaly per calendar month
//   - [FitPolynomial]: least-squares polynomial trend, used for acceleration
//   - [Spectrum]: power spectrum of the detrended series
//
// Trends are expressed per decade:
//
//	sum := analysis.Summarize(s)
//	fmt.Printf("%+.2f °C/decade\n", sum.TrendPerDecade)
package analysis
