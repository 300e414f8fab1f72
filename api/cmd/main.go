package main

import (
	api "Yatube/api"
)

func main() {
	api.Run()
}
