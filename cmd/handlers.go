package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/errgroup"
)

func (p *portalContext) searchHandler(ctx *gin.Context) {
	cl := clientContext{}
	cl.init(p, ctx)
	cl.logRequest()

	var raw map[string]string
	if err := ctx.ShouldBindJSON(&raw); err != nil {
		resp := searchResponse{status: http.StatusBadRequest, err: err}
		cl.logResponse(resp)
		ctx.JSON(resp.status, ErrorInfo{Code: errCodeRequest, Message: err.Error()})
		return
	}

	s := newSearchContext(p, &cl)

	resp := s.handleSearchRequest(ctx.Request.Context(), raw)
	cl.logResponse(resp)

	ctx.JSON(resp.status, resp.data)
}

func (p *portalContext) facetsHandler(ctx *gin.Context) {
	cl := clientContext{}
	cl.init(p, ctx)
	cl.logRequest()

	var raw map[string]string
	if err := ctx.ShouldBindJSON(&raw); err != nil {
		resp := searchResponse{status: http.StatusBadRequest, err: err}
		cl.logResponse(resp)
		ctx.JSON(resp.status, ErrorInfo{Code: errCodeRequest, Message: err.Error()})
		return
	}

	s := newSearchContext(p, &cl)

	resp := s.handleFacetsRequest(ctx.Request.Context(), raw)
	cl.logResponse(resp)

	ctx.JSON(resp.status, resp.data)
}

func (p *portalContext) resourceHandler(ctx *gin.Context) {
	cl := clientContext{}
	cl.init(p, ctx)
	cl.logRequest()

	s := newSearchContext(p, &cl)

	resp := s.handleRecordRequest(ctx.Request.Context(), ctx.Param("id"), ctx.Query("engine"))
	cl.logResponse(resp)

	ctx.JSON(resp.status, resp.data)
}

type healthStatus struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

func (p *portalContext) healthCheckHandler(ctx *gin.Context) {
	cl := clientContext{}
	cl.init(p, ctx)
	cl.logRequest()

	expiry := p.config.Service.HealthExpiry
	if expiry < 1 {
		expiry = 10
	}

	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), time.Duration(expiry)*time.Second)
	defer cancel()

	engines := map[string]searchEngine{
		engineNameCatalogue: p.catalogue,
		engineNameDiscovery: p.discovery,
	}

	health := make(map[string]healthStatus)

	var mu sync.Mutex
	var g errgroup.Group

	for name, engine := range engines {
		name, engine := name, engine

		g.Go(func() error {
			status := healthStatus{Healthy: true}

			if err := pingEngine(checkCtx, engine, &cl); err != nil {
				status = healthStatus{Healthy: false, Message: err.Error()}
			}

			mu.Lock()
			health[name] = status
			mu.Unlock()

			return nil
		})
	}

	g.Wait()

	hcStatus := http.StatusOK
	for _, status := range health {
		if status.Healthy == false {
			hcStatus = http.StatusInternalServerError
		}
	}

	resp := searchResponse{status: hcStatus}
	cl.logResponse(resp)

	ctx.JSON(hcStatus, health)
}

func (p *portalContext) versionHandler(ctx *gin.Context) {
	cl := clientContext{}
	cl.init(p, ctx)
	cl.logRequest()

	ctx.JSON(http.StatusOK, p.version)
}

func (p *portalContext) ignoreHandler(ctx *gin.Context) {
	ctx.String(http.StatusOK, "")
}

func getBearerToken(authorization string) (string, error) {
	components := strings.Split(strings.Join(strings.Fields(authorization), " "), " ")

	// must have two components, the first of which is "Bearer", and the second a non-empty token
	if len(components) != 2 || components[0] != "Bearer" || components[1] == "" {
		return "", fmt.Errorf("invalid authorization header: [%s]", authorization)
	}

	return components[1], nil
}

// authenticateHandler is the middleware guarding the search endpoints.
// requests carry a bearer token signed with the shared service key.
func (p *portalContext) authenticateHandler(ctx *gin.Context) {
	token, err := getBearerToken(ctx.GetHeader("Authorization"))
	if err != nil {
		log.Printf("authentication failed: [%s]", err.Error())
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims := jwt.MapClaims{}

	_, jwtErr := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); ok == false {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(p.config.Service.JWTKey), nil
	})

	if jwtErr != nil {
		log.Printf("token validation failed: [%s]", jwtErr.Error())
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ctx.Set("claims", claims)
}
