package main

import (
	"fmt"
	"log"
	"os"

	"github.com/aussiebroadwan/keyward/internal/license/app"
	"github.com/aussiebroadwan/keyward/pkg/cryptox"
)

func main() {
	// `license hash-key <key>` prints the argon2id hash an operator puts in
	// LICENSE_ADMIN_KEY_HASH. Everything else starts the service.
	if len(os.Args) > 1 && os.Args[1] == "hash-key" {
		hashKey(os.Args[2:])
		return
	}

	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

func hashKey(args []string) {
	if len(args) != 1 || args[0] == "" {
		fmt.Fprintln(os.Stderr, "usage: license hash-key <admin-key>")
		os.Exit(2)
	}

	hash, err := cryptox.HashKey(args[0])
	if err != nil {
		log.Fatalf("failed to hash key: %v", err)
	}

	fmt.Println(hash)
}
