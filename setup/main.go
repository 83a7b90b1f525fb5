package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"strings"
)

// composes the service's json config env vars from a local config directory
// and writes a sourceable setup_env.sh for development and deployment.

func main() {
	type cfgData struct {
		File   string
		EnvVar string
	}

	var cfgBase string
	var tgtEnv string
	var port string
	flag.StringVar(&cfgBase, "dir", "", "local directory containing the portal config tree")
	flag.StringVar(&tgtEnv, "env", "staging", "production or staging")
	flag.StringVar(&port, "port", "8080", "port to run the service on")
	flag.Parse()

	if cfgBase == "" {
		log.Fatal("dir is required")
	}
	if tgtEnv != "staging" && tgtEnv != "production" {
		log.Fatal("env must be staging or production")
	}

	envBase := path.Join(cfgBase, tgtEnv)

	log.Printf("Generate portal config for %s from %s", tgtEnv, envBase)
	cfgFiles := []cfgData{
		{File: "service.json", EnvVar: "PORTAL_SEARCH_WS_JSON_01"},
		{File: "catalogue.json", EnvVar: "PORTAL_SEARCH_WS_JSON_02"},
		{File: "discovery.json", EnvVar: "PORTAL_SEARCH_WS_JSON_03"},
	}

	out := make([]string, 0)
	for _, cf := range cfgFiles {
		tgtFile := path.Join(envBase, cf.File)
		jsonBytes, err := os.ReadFile(tgtFile)
		if err != nil {
			log.Fatal(err.Error())
		}

		if cf.EnvVar == "PORTAL_SEARCH_WS_JSON_01" {
			// the service config sets the port to "8080"; override
			updated := strings.Replace(string(jsonBytes), "8080", port, 1)
			jsonBytes = []byte(updated)
		}

		out = append(out, fmt.Sprintf("export %s='%s'", cf.EnvVar, string(jsonBytes)))
	}

	outF, err := os.Create("setup_env.sh")
	if err != nil {
		log.Fatal(err.Error())
	}
	outF.WriteString("#!/bin/bash\n\n")
	outF.WriteString(strings.Join(out, "\n"))
	outF.WriteString("\n")
	outF.Close()
	os.Chmod("setup_env.sh", 0777)
}
