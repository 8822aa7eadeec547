package main

import (
	"fmt"
	"os"

	"github.com/Solana-Vibe-Station/grpc-connection-examples/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}
