package ratelimit

import "strings"

// AnyMethod in EndpointConfig.Method matches every HTTP method.
const AnyMethod = "*"

// MatchEndpoint returns the config governing a request, or nil when none
// applies. An exact path wins; otherwise the longest config path ending in
// "/" that prefixes the request path wins ("/v1/resumes/" covers
// "/v1/resumes/{id}"). A config for the request's method beats an AnyMethod
// config for the same path.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	var (
		best      *EndpointConfig
		bestScore int
	)
	for i := range configs {
		cfg := &configs[i]
		if cfg.Method != method && cfg.Method != AnyMethod {
			continue
		}

		var score int
		switch {
		case cfg.Path == path:
			score = 2 * (len(path) + 1)
		case strings.HasSuffix(cfg.Path, "/") && strings.HasPrefix(path, cfg.Path):
			score = 2 * len(cfg.Path)
		default:
			continue
		}
		if cfg.Method == method {
			score++
		}

		if score > bestScore {
			best, bestScore = cfg, score
		}
	}
	return best
}
