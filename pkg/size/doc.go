// Package size measures arbitrary values by member count and reduces lists of
// values to their longest, shortest or total size. Absent entries (nil values)
// never win a pick and count as zero in sums.
package size
