// Package processor contains the core business logic of hanzicloze. It
// loads the vocabulary log, selects the entries added since the last run,
// builds their cloze cards, writes the card files and finally moves the
// end marker of the log. This package serves as the main coordinator
// between all other components.
package processor
