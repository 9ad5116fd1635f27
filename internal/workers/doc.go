// Package workers computes worker pool sizes for concurrent tasks based
// on available CPU resources. The encode worker pool uses it to bound how
// many ffmpeg processes run at once.
package workers
