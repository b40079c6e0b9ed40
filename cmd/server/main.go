package main

import (
	"log"

	"github.com/lintang-b-s/transit-access-link/pkg/di"
	shortcontext "github.com/lintang-b-s/transit-access-link/pkg/di/context"
)

func main() {
	ctx, cancel, _ := shortcontext.New()
	defer cancel()

	server, cleanup, err := di.InitializeAccessLinkServer()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	if err := server.Run(ctx); err != nil {
		log.Println(err)
	}
}
