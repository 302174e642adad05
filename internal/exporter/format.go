package exporter

import "strconv"

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatCount(v int) string {
	return strconv.Itoa(v)
}
