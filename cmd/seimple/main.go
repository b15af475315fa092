package main

import "github.com/seimple/seimple/internal/app"

func main() {
	app.Run()
}
