package command

import "log"

func logDone(c Command, lines, length int) {
	log.Printf("%s: %d lines, %d bytes", c, lines, length)
}
