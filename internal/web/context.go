package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/JonMunkholm/adtran-import/internal/core"
)

// withRequestMetadata attaches the requester to ctx so the conversion log
// lines carry it. RemoteAddr has already been rewritten by TrustedRealIP.
func withRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	source := "web"
	if strings.HasPrefix(r.URL.Path, "/api/") {
		source = "api"
	}
	return core.WithRequester(ctx, core.Requester{
		Source:    source,
		ClientIP:  r.RemoteAddr,
		UserAgent: r.UserAgent(),
	})
}
