package main

import "github.com/cr4652060-hue/kb-system/internal/bootstrap"

func main() {
	bootstrap.Run()
}
