package main

import "time"

const noticeDuration = 3 * time.Second

// notice is a one-line message shown in the HUD for noticeDuration.
type notice struct {
	text  string
	until time.Time
}

func (n *notice) show(text string, now time.Time) {
	n.text = text
	n.until = now.Add(noticeDuration)
}

// active returns the message while it has not expired.
func (n *notice) active(now time.Time) (string, bool) {
	if n.text == "" || !now.Before(n.until) {
		return "", false
	}
	return n.text, true
}
