package main

import (
	"log"

	"github.com/davfile/davfile/cmd/davctl/cmd"
)

func main() {
	if err := cmd.NewRoot().Execute(); err != nil {
		log.Printf("exec cmd failed, err:%v", err)
	}
}
