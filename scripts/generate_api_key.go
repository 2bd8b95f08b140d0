// generate_api_key prints a random key suitable for OPTIMIZE_SERVICE_API_KEY,
// adapted from the host's partner-key generator: this service checks a
// single static key from configuration rather than a hashed per-partner
// row in a database, so the checksum/prefix/database-insert-statement
// machinery that existed to support that lookup is dropped.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

func main() {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		panic(err)
	}
	key := "opt_" + hex.EncodeToString(randomBytes)

	fmt.Println("Generated API key:")
	fmt.Println(key)
	fmt.Println()
	fmt.Println("Set it with:")
	fmt.Printf("  export OPTIMIZE_SERVICE_API_KEY=%s\n", key)
}
