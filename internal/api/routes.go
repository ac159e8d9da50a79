package api

import "github.com/salesdash/salesdash/internal/webserver"

// Register mounts every dashboard route on s
func Register(s *webserver.WebServer) {
	registerSeedRoutes(s)
	registerTransactionRoutes(s)
	registerReportRoutes(s)
}
