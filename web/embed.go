// Package web встраивает статический фронтенд приложения.
package web

import "embed"

// StaticFS содержит страницы входа, регистрации и дашборда
// вместе со скриптами и стилями.
//
//go:embed static
var StaticFS embed.FS
