package main

import "hydroboard/internal/app"

func main() {
	app.Run()
}
