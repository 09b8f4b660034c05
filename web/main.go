package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/df07/go-portal-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()
	defer glog.Flush()

	glog.CopyStandardLogTo("INFO")

	webServer := server.NewServer(*port)
	glog.Infof("Visit http://localhost:%d/api/render?scene=portal to render", *port)

	if err := webServer.Start(); err != nil {
		glog.Exitf("Error starting server: %v", err)
	}
}
