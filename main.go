package main

import (
	"net/http"

	"github.com/Zoharvan12/simply-mind-3/config"
	"github.com/Zoharvan12/simply-mind-3/middleware"
	"github.com/Zoharvan12/simply-mind-3/routes"
	"github.com/Zoharvan12/simply-mind-3/supabase"
)

func main() {

	config.LoadEnv()
	config.InitLogger()
	supabase.Init()

	mux := http.NewServeMux()
	routes.RegisterAllRoutes(mux)

	handler := middleware.Chain(
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)(mux)

	port := config.Port()
	config.Logger.Info("Server is running on port ", port)
	config.Logger.Fatal(http.ListenAndServe(":"+port, handler))
}
