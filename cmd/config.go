package main

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"sort"
	"strings"
)

type portalConfigAuth struct {
	Scheme  string `json:"scheme,omitempty"`
	ID      string `json:"id,omitempty"`
	Secret  string `json:"secret,omitempty"`
	Version string `json:"version,omitempty"`
}

type portalConfigEngine struct {
	Host          string            `json:"host,omitempty"`
	SearchPath    string            `json:"search_path,omitempty"`
	SuggestPath   string            `json:"suggest_path,omitempty"`
	ConnTimeout   string            `json:"conn_timeout,omitempty"`
	ReadTimeout   string            `json:"read_timeout,omitempty"`
	PageLimit     int               `json:"page_limit,omitempty"`    // hard cap on requested/reported pages
	PageSize      int               `json:"page_size,omitempty"`     // rows per page
	FacetLimit    int               `json:"facet_limit,omitempty"`   // facets shown per group
	BranchLimit   int               `json:"branch_limit,omitempty"`  // branches shown per record
	HighlightTag  string            `json:"highlight_tag,omitempty"` // inline emphasis tag to strip (catalogue)
	NotFoundCode  int               `json:"not_found_code,omitempty"`
	Formats       map[string]string `json:"formats,omitempty"` // canonical format -> engine token
	Auth          *portalConfigAuth `json:"auth,omitempty"`
	DatasourceTag string            `json:"datasource_tag,omitempty"`
}

type portalConfigFacetXID struct {
	RawLabel string `json:"raw_label,omitempty"` // engine facet label, lowercased
	XID      string `json:"xid,omitempty"`       // translation ID
}

type portalConfigService struct {
	Port         string                 `json:"port,omitempty"`
	JWTKey       string                 `json:"jwt_key,omitempty"`
	FacetsPath   string                 `json:"facets_path,omitempty"` // base path for "more facets" URLs
	FacetXIDs    []portalConfigFacetXID `json:"facet_xids,omitempty"`
	HealthExpiry int                    `json:"health_expiry,omitempty"`
}

type portalConfig struct {
	Service   portalConfigService `json:"service,omitempty"`
	Catalogue portalConfigEngine  `json:"catalogue,omitempty"`
	Discovery portalConfigEngine  `json:"discovery,omitempty"`
}

func getSortedJSONEnvVars() []string {
	var keys []string

	for _, keyval := range os.Environ() {
		key := strings.Split(keyval, "=")[0]
		if strings.HasPrefix(key, "PORTAL_SEARCH_WS_JSON_") {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	return keys
}

func loadConfig() *portalConfig {
	cfg := portalConfig{}

	// json configs

	envs := getSortedJSONEnvVars()

	valid := true

	for _, env := range envs {
		log.Printf("[CONFIG] loading %s ...", env)
		if val := os.Getenv(env); val != "" {
			dec := json.NewDecoder(bytes.NewReader([]byte(val)))
			dec.DisallowUnknownFields()

			if err := dec.Decode(&cfg); err != nil {
				log.Printf("error decoding %s: %s", env, err.Error())
				valid = false
			}
		}
	}

	if valid == false {
		log.Printf("exiting due to json decode error(s) above")
		os.Exit(1)
	}

	// optional convenience overrides to simplify deployment config
	if host := os.Getenv("PORTAL_SEARCH_WS_CATALOGUE_HOST"); host != "" {
		cfg.Catalogue.Host = host
	}

	if host := os.Getenv("PORTAL_SEARCH_WS_DISCOVERY_HOST"); host != "" {
		cfg.Discovery.Host = host
	}

	bytes, err := json.Marshal(redactedConfig(cfg))
	if err != nil {
		log.Printf("error encoding portal config json: %s", err.Error())
		os.Exit(1)
	}

	log.Printf("[CONFIG] composite json:")
	log.Printf("\n%s", string(bytes))

	return &cfg
}

// redactedConfig strips signing credentials before the composite config is logged.
func redactedConfig(cfg portalConfig) portalConfig {
	if cfg.Discovery.Auth != nil {
		auth := *cfg.Discovery.Auth
		auth.Secret = "REDACTED"
		cfg.Discovery.Auth = &auth
	}

	if cfg.Catalogue.Auth != nil {
		auth := *cfg.Catalogue.Auth
		auth.Secret = "REDACTED"
		cfg.Catalogue.Auth = &auth
	}

	cfg.Service.JWTKey = "REDACTED"

	return cfg
}
