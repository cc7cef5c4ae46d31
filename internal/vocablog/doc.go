// Package vocablog reads and maintains the pipe-delimited vocabulary log.
// It loads the log into lines, locates the end-of-processed-region marker,
// selects the entries that still need converting and restamps the marker
// once a run has finished.
package vocablog
