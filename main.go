package main

import "github.com/frahmantamala/ponto-eletronico/cmd"

func main() {
	cmd.Execute()
}
