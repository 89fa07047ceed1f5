package apidocs

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"
)

type Opts func(*config)

// configures the Doc middlewares
type config struct {
	// SpecURL the url to find the spec for
	SpecURL string
	// When this return value is false, 403 will be responsed.
	Authorizer func(*http.Request) bool
}

// WithAuthorizer 限制能看到文档的请求
func WithAuthorizer(authorizer func(*http.Request) bool) Opts {
	return func(cfg *config) {
		cfg.Authorizer = authorizer
	}
}

func prepare(basePath string, cfg *config) (string, string) {
	docPath := path.Join(basePath, "apidocs")

	// html
	tmpl := template.Must(template.New("apidoc").Parse(pageTemplate))
	buf := bytes.NewBuffer(nil)
	_ = tmpl.Execute(buf, cfg)

	return docPath, buf.String()
}

// Doc creates a middleware to serve a documentation site for an OpenAPI spec.
// basePath redirects to the documentation page, the spec itself is served as JSON.
func Doc(basePath string, specJSON []byte, opts ...Opts) echo.MiddlewareFunc {
	cfg := &config{
		SpecURL: path.Join(basePath, "apispec.json"),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	docPath, uiHTML := prepare(basePath, cfg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqPath := c.Request().URL.Path
			switch reqPath {
			case basePath, docPath, cfg.SpecURL:
			default:
				if next == nil {
					return c.String(http.StatusNotFound, fmt.Sprintf("%q not found", reqPath))
				}
				return next(c)
			}

			if cfg.Authorizer != nil && !cfg.Authorizer(c.Request()) {
				return c.String(http.StatusForbidden, "Forbidden")
			}

			switch reqPath {
			case docPath:
				return c.HTML(http.StatusOK, uiHTML)
			case cfg.SpecURL:
				return c.JSONBlob(http.StatusOK, specJSON)
			default:
				return c.Redirect(http.StatusFound, docPath)
			}
		}
	}
}

const pageTemplate = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <title>Recipe API documentation</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>

  <body>
    <script id="api-reference" data-url="{{ .SpecURL }}"></script>

    <script src="https://cdnjs.cloudflare.com/ajax/libs/scalar-api-reference/1.25.99/standalone.min.js" integrity="sha512-ai3lOYZ5efNXMYwnqhz0mnCaImbqfwLE1VCx9Y9nhB3OJX4/uegjIAoQtJHy3SILHp/gS1OlPCIeNFPZT5i2WQ==" crossorigin="anonymous" referrerpolicy="no-referrer"></script>
  </body>
</html>`
