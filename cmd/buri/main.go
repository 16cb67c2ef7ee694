// Buri resolves build orders for targets declared in per-directory manifests.
package main

import "github.com/albertocavalcante/go-buri/cmd/buri/internal/cli"

func main() {
	cli.Execute()
}
