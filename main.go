package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/railscamp/registration-api/cmd/app"
)

// @contact.name   Railscamp Organisers
// @contact.email  organisers@railscamps.org
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
