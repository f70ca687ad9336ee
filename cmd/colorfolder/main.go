package main

import "github.com/justyntemme/colorfolder/internal/app"

func main() {
	app.Main()
}
