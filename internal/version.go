package internal

// Version is the current hanzicloze release.
const Version = "0.3.1"
