// cmd/main.go
package main

import (
	"go-weather-api/app"
)

// @title           Go-Weather API
// @version         1.0
// @description     Personal weather backend: auth, weather proxy, favorites and push subscriptions.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
