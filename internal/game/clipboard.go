package game

import "github.com/atotto/clipboard"

// copyToClipboard places text on the system clipboard. An empty string is
// replaced by a space so the clipboard is always overwritten.
func copyToClipboard(text string) error {
	if text == "" {
		text = " "
	}
	return clipboard.WriteAll(text)
}
