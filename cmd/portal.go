package main

import (
	"fmt"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

const (
	engineNameCatalogue = "catalogue"
	engineNameDiscovery = "discovery"
)

type portalVersion struct {
	BuildVersion string `json:"build,omitempty"`
	GoVersion    string `json:"go_version,omitempty"`
	GitCommit    string `json:"git_commit,omitempty"`
}

type portalTranslations struct {
	bundle *i18n.Bundle
}

// portalContext contains the resources shared by all requests
type portalContext struct {
	randomSource *rand.Rand
	config       *portalConfig
	translations portalTranslations
	version      portalVersion
	facetXIDs    map[string]string
	catalogue    *catalogueEngine
	discovery    *discoveryEngine
}

func (p *portalContext) initVersion() {
	buildVersion := "unknown"
	files, _ := filepath.Glob("buildtag.*")
	if len(files) == 1 {
		buildVersion = strings.Replace(files[0], "buildtag.", "", 1)
	}

	gitCommit := "unknown"
	files, _ = filepath.Glob("commit.*")
	if len(files) == 1 {
		gitCommit = strings.Replace(files[0], "commit.", "", 1)
	}

	p.version = portalVersion{
		BuildVersion: buildVersion,
		GoVersion:    fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
		GitCommit:    gitCommit,
	}

	log.Printf("[PORTAL] version.BuildVersion = [%s]", p.version.BuildVersion)
	log.Printf("[PORTAL] version.GoVersion    = [%s]", p.version.GoVersion)
	log.Printf("[PORTAL] version.GitCommit    = [%s]", p.version.GitCommit)
}

func (p *portalContext) initTranslations() {
	defaultLang := language.English

	bundle := i18n.NewBundle(defaultLang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	toks, _ := filepath.Glob("i18n/*.toml")
	for _, tok := range toks {
		log.Printf("[PORTAL] loading translation file: [%s]", tok)
		bundle.MustLoadMessageFile(tok)
	}

	p.translations = portalTranslations{bundle: bundle}
}

// engineHTTPClient builds an outbound client with the engine's configured
// connection and read timeouts.
func engineHTTPClient(name string, cfg *portalConfigEngine) *http.Client {
	connTimeout := integerWithMinimum(cfg.ConnTimeout, 1)
	readTimeout := integerWithMinimum(cfg.ReadTimeout, 1)

	log.Printf("[PORTAL] %s: conn timeout: [%d]  read timeout: [%d]", name, connTimeout, readTimeout)

	return &http.Client{
		Timeout: time.Duration(readTimeout) * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: time.Duration(connTimeout) * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
		},
	}
}

func (p *portalContext) initEngines() {
	p.facetXIDs = make(map[string]string)
	for _, xid := range p.config.Service.FacetXIDs {
		p.facetXIDs[strings.ToLower(xid.RawLabel)] = xid.XID
	}

	facetsPath := p.config.Service.FacetsPath

	p.catalogue = newCatalogueEngine(&p.config.Catalogue, engineHTTPClient(engineNameCatalogue, &p.config.Catalogue), p.facetXIDs, facetsPath)
	p.discovery = newDiscoveryEngine(&p.config.Discovery, engineHTTPClient(engineNameDiscovery, &p.config.Discovery), p.facetXIDs, facetsPath)
}

func normalizeEngineConfig(name string, cfg *portalConfigEngine) {
	cfg.PageLimit = restrictValue(name+" page_limit", cfg.PageLimit, 1, 50)
	cfg.PageSize = restrictValue(name+" page_size", cfg.PageSize, 1, 20)
	cfg.FacetLimit = restrictValue(name+" facet_limit", cfg.FacetLimit, 1, 5)
	cfg.BranchLimit = restrictValue(name+" branch_limit", cfg.BranchLimit, 1, 5)
}

func (p *portalContext) validateConfig() {
	invalid := false

	v := stringValidator{}
	v.setPrefix("[VALIDATE] ")

	v.requireValue(p.config.Service.Port, "service port")
	v.requireValue(p.config.Service.JWTKey, "jwt key")
	v.requireValue(p.config.Service.FacetsPath, "facets path")
	v.requireValue(p.config.Catalogue.Host, "catalogue host")
	v.requireValue(p.config.Catalogue.SearchPath, "catalogue search path")
	v.requireValue(p.config.Discovery.Host, "discovery host")
	v.requireValue(p.config.Discovery.SearchPath, "discovery search path")

	if p.config.Discovery.Auth == nil {
		log.Printf("[VALIDATE] missing discovery auth block")
		invalid = true
	} else {
		v.requireValue(p.config.Discovery.Auth.Scheme, "discovery auth scheme")
		v.requireValue(p.config.Discovery.Auth.ID, "discovery auth id")
		v.requireValue(p.config.Discovery.Auth.Secret, "discovery auth secret")
		v.requireValue(p.config.Discovery.Auth.Version, "discovery auth version")
	}

	// every configured facet translation ID must actually resolve
	localizer := i18n.NewLocalizer(p.translations.bundle, language.English.String())
	for _, xid := range p.config.Service.FacetXIDs {
		if _, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: xid.XID}); err != nil {
			log.Printf("[VALIDATE] facet label translation missing: [%s]", xid.XID)
			invalid = true
		}
	}

	if v.Invalid() == true || invalid == true {
		log.Printf("[VALIDATE] exiting due to error(s) above")
		os.Exit(1)
	}
}

func initializePortal(cfg *portalConfig) *portalContext {
	p := portalContext{}

	p.randomSource = rand.New(rand.NewSource(time.Now().UnixNano()))
	p.config = cfg

	normalizeEngineConfig(engineNameCatalogue, &cfg.Catalogue)
	normalizeEngineConfig(engineNameDiscovery, &cfg.Discovery)

	p.initVersion()
	p.initTranslations()
	p.initEngines()

	p.validateConfig()

	return &p
}
