package main

import "github.com/cursorassist/cursorassist/cmd"

func main() {
	cmd.Execute()
}
