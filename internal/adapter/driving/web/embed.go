package web

import "embed"

//go:generate go tool templ generate -path templates

// StaticFS holds the embedded static assets (stylesheet, banner script).
//
//go:embed static/*
var StaticFS embed.FS
