package game

import "github.com/atotto/clipboard"

// copyToClipboard is a variable so tests can stub the system clipboard.
var copyToClipboard = clipboard.WriteAll
