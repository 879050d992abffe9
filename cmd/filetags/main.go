// @title filetags API
// @version 1.0
// @description Concurrent tag management over a fixed set of tracked files.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token from /auth/login.
package main

import (
	"os"

	_ "filetags/docs"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
