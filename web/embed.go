package web

import "embed"

// TemplatesFS embeds the HTML pages rendered by the web server.
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds static assets served under /static/.
//go:embed static/*
var StaticFS embed.FS
