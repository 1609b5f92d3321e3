// Package plot draws the k* curve of a sweep as a text line chart.
//
// Points are plotted on a braille dot grid (2x4 dots per terminal cell) and
// joined by straight segments. The y axis is ticked every 5 units of k, the x
// axis every 10 units of n, and the k value is annotated above the points at
// n = 1, 11, 21 and so on.
package plot
