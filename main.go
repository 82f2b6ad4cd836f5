package main

import (
	"os"

	"gigflow/internal/cli"
)

// @title           GigFlow API
// @version         1.0
// @description     Freelance marketplace: clients post gigs, freelancers bid, clients hire exactly one bid.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
