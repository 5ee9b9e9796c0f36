package main

import (
	"fmt"
	"os"

	"github.com/tracknest/tracknest/pkg/crypto"
)

func main() {
	privateKey, publicKey, err := crypto.GenerateSigningKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate key pair: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Generated Ed25519 signing key pair")
	fmt.Println()
	fmt.Println("Private Key (keep this secret!):")
	fmt.Println(privateKey)
	fmt.Println()
	fmt.Println("Public Key:")
	fmt.Println(publicKey)
	fmt.Println()
	fmt.Println("Set the private key as SIGNING_KEY in your environment.")
	fmt.Println("Share the public key with peers that verify your dumps.")
}
