// Package web holds the embedded single-page shell served at GET /.
// All user data is fetched by the page itself over the JSON API.
package web

import _ "embed"

//go:embed index.html
var Index []byte
