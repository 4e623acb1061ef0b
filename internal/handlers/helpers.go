package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v3"

	"mapdex/internal/config"
)

// MergeBranding adds the site branding fields to a render map.
func MergeBranding(m fiber.Map, cfg *config.Config) fiber.Map {
	m["SiteTitle"] = cfg.SiteTitle
	m["SiteTagline"] = cfg.SiteTagline
	m["SiteFooter"] = cfg.SiteFooter
	return m
}

// queryValues copies the request query string into url.Values, preserving
// repeated keys (the slug travels as repeated slug= parameters).
func queryValues(c fiber.Ctx) url.Values {
	q := url.Values{}
	c.RequestCtx().QueryArgs().VisitAll(func(key, value []byte) {
		q.Add(string(key), string(value))
	})
	return q
}
