package main

import (
	"os"

	"github.com/dayminder/dayminder/reminderservice"
)

func main() {
	if err := reminderservice.Run(); err != nil {
		os.Exit(1)
	}
}
